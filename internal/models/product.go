package models

// Flag — имя флага покупки в ответе link-сервиса.
type Flag string

const (
	FlagLSAC        Flag = "LSAC"
	FlagSwiftAC     Flag = "SwiftAC"
	FlagHitReg      Flag = "HitReg"
	FlagScreenGrabs Flag = "ScreenGrabs"
	FlagWorkshopDL  Flag = "WorkshopDL"
	FlagSexyErrors  Flag = "SexyErrors"
)

// Product описывает продукт: флаг покупки, подпись в эмбеде и роль поддержки.
type Product struct {
	Flag   Flag
	Label  string
	RoleID string
}

const (
	// VerifiedRoleID выдаётся всем привязанным участникам при входе на сервер.
	VerifiedRoleID = "884063960582721597"
	// LSACProductID — идентификатор LSAC в GmodStore, для него выпускаются купоны.
	LSACProductID = "6c5e862b-3dcf-4769-aa6b-8a001937c56b"
)

// Products — упорядоченный каталог. Порядок определяет и порядок выдачи ролей,
// и порядок строк в эмбеде покупок.
var Products = []Product{
	{Flag: FlagLSAC, Label: "Ley's Server-Side AntiCheat", RoleID: "884061162482847765"},
	{Flag: FlagSwiftAC, Label: "SwiftAC", RoleID: "884060408946757663"},
	{Flag: FlagHitReg, Label: "Ley's HitReg", RoleID: "884060954294386698"},
	{Flag: FlagScreenGrabs, Label: "Ley's Screengrabs", RoleID: "889306784551026780"},
	{Flag: FlagWorkshopDL, Label: "Ley WorkshopDL", RoleID: "884060628128497716"},
	{Flag: FlagSexyErrors, Label: "Ley Sexy Errors", RoleID: "884060823205609473"},
}
