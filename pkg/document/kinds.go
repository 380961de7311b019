package document

// DispositionKindFor maps a disposition section label to its kind.
// The second result is false for non-disposition labels.
func DispositionKindFor(label SectionLabel) (DispositionKind, bool) {
	switch label {
	case SectionDisposicionesFinales:
		return DispositionFinal, true
	case SectionDisposicionesTransitorias:
		return DispositionTransitoria, true
	case SectionDisposicionesAdicionales:
		return DispositionAdicional, true
	case SectionDisposicionesAbrogatorias:
		return DispositionAbrogatoria, true
	default:
		return "", false
	}
}
