package contracts

// Sector is the segment label of a fund as it appears in the dataset.
// The set is open-ended: unknown labels are kept verbatim.
// ⭐ SSOT: 섹터 문자열 상수는 여기서만 정의
type Sector string

const (
	SectorReceivables  Sector = "Recebíveis"
	SectorLogistics    Sector = "Logístico"
	SectorMalls        Sector = "Shopping"
	SectorOffices      Sector = "Escritórios"
	SectorFundsOfFunds Sector = "Fundo de Fundos"

	// Unclassified labels funds without a sector in charts
	Unclassified Sector = "Não classificado"
)

// KnownSectors returns the sectors the recommendation rules partition on
func KnownSectors() []Sector {
	return []Sector{
		SectorReceivables,
		SectorLogistics,
		SectorMalls,
		SectorOffices,
		SectorFundsOfFunds,
	}
}

// IsKnown reports whether s is one of KnownSectors (exact match)
func (s Sector) IsKnown() bool {
	for _, known := range KnownSectors() {
		if s == known {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the fund carries no sector label
func (s Sector) IsEmpty() bool {
	return s == ""
}

// String implements fmt.Stringer
func (s Sector) String() string {
	return string(s)
}
