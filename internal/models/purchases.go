package models

// Purchases — снимок флагов владения шестью продуктами на момент запроса.
type Purchases struct {
	LSAC        bool `json:"LSAC"`
	SwiftAC     bool `json:"SwiftAC"`
	HitReg      bool `json:"HitReg"`
	ScreenGrabs bool `json:"ScreenGrabs"`
	WorkshopDL  bool `json:"WorkshopDL"`
	SexyErrors  bool `json:"SexyErrors"`
}

// Owns сообщает, куплен ли продукт с указанным флагом.
func (p Purchases) Owns(flag Flag) bool {
	switch flag {
	case FlagLSAC:
		return p.LSAC
	case FlagSwiftAC:
		return p.SwiftAC
	case FlagHitReg:
		return p.HitReg
	case FlagScreenGrabs:
		return p.ScreenGrabs
	case FlagWorkshopDL:
		return p.WorkshopDL
	case FlagSexyErrors:
		return p.SexyErrors
	default:
		return false
	}
}
