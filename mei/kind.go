package mei

type Kind int

const (
	KindScore Kind = iota
	KindScoreDef
	KindStaffDef
	KindSection
	KindMeasure
	KindStaff
	KindLayer

	// Layer elements
	KindNote
	KindRest
	KindMRest
	KindMultiRest
	KindBeam
	KindGraceGrp
	KindAccid
	KindClef
	KindKeySig
	KindKeyAccid
	KindMeterSig
	KindMensur

	// Control elements
	KindFermata
	KindTrill
	KindTie
)

var kindNames = map[Kind]string{
	KindScore:     "score",
	KindScoreDef:  "scoreDef",
	KindStaffDef:  "staffDef",
	KindSection:   "section",
	KindMeasure:   "measure",
	KindStaff:     "staff",
	KindLayer:     "layer",
	KindNote:      "note",
	KindRest:      "rest",
	KindMRest:     "mRest",
	KindMultiRest: "multiRest",
	KindBeam:      "beam",
	KindGraceGrp:  "graceGrp",
	KindAccid:     "accid",
	KindClef:      "clef",
	KindKeySig:    "keySig",
	KindKeyAccid:  "keyAccid",
	KindMeterSig:  "meterSig",
	KindMensur:    "mensur",
	KindFermata:   "fermata",
	KindTrill:     "trill",
	KindTie:       "tie",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Is reports whether k is one of kinds.
func (k Kind) Is(kinds ...Kind) bool {
	for _, other := range kinds {
		if k == other {
			return true
		}
	}
	return false
}
