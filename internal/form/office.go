package form

// Field ids of the office cleaning form. The office price is computed from
// dedicated lookup tables keyed by these answers.
const (
	OfficeFrequency         = "cleaningFrequency"
	OfficeCalculationMethod = "calculationMethod"
	OfficeDuration          = "cleaningDuration"
	OfficeArea              = "officeArea"
	OfficeFloorType         = "floorType"
	OfficeKitchen           = "kitchenCleaning"
	OfficeBathrooms         = "bathroomCleaning"
	OfficeWindows           = "windowCleaning"
	OfficeWasteSorting      = "wasteSorting"
	OfficeConsumables       = "consumablesRestock"

	MethodHours = "hours"
	MethodArea  = "area"
)

// OfficeCleaning is the bespoke office cleaning service.
func OfficeCleaning() *Config {
	return &Config{
		ID:              ServiceOfficeCleaning,
		Title:           "Úklid kanceláří",
		Description:     "Pravidelný úklid kancelářských prostor.",
		BasePrice:       3000,
		Strategy:        StrategyOffice,
		Billing:         BillingMonthly,
		PostalCodeField: "zipCode",
		NoteField:       "notes",
		Sections: []Section{
			{
				ID:    "scope",
				Title: "Rozsah úklidu",
				Fields: []Field{
					radio(OfficeFrequency, "Četnost úklidu", true,
						opt("daily", "Denně (5x týdně)", 1),
						opt("3x-weekly", "3x týdně", 1),
						opt("2x-weekly", "2x týdně", 1),
						opt("weekly", "1x týdně", 1),
						opt("biweekly", "1x za 14 dní", 1),
					),
					radio(OfficeCalculationMethod, "Způsob výpočtu", true,
						opt(MethodHours, "Podle délky úklidu", 1),
						opt(MethodArea, "Podle plochy kanceláří", 1),
					),
					&Conditional{
						ID:        "byHours",
						Condition: When(OfficeCalculationMethod, OpEquals, MethodHours),
						Fields: []Field{
							selectField(OfficeDuration, "Délka jednoho úklidu", true,
								opt("1h", "1 hodina", 1),
								opt("2h", "2 hodiny", 1),
								opt("3h", "3 hodiny", 1),
								opt("4h", "4 hodiny", 1),
								opt("over-4h", "Více než 4 hodiny", 1),
							),
						},
					},
					&Conditional{
						ID:        "byArea",
						Condition: When(OfficeCalculationMethod, OpEquals, MethodArea),
						Fields: []Field{
							selectField(OfficeArea, "Plocha kanceláří", true,
								opt("up-to-50", "Do 50 m²", 1),
								opt("50-100", "50 až 100 m²", 1),
								opt("100-200", "100 až 200 m²", 1),
								opt("200-300", "200 až 300 m²", 1),
								opt("over-300", "Více než 300 m²", 1),
							),
						},
					},
					radio(OfficeFloorType, "Typ podlahy", true,
						opt("hard", "Tvrdá podlaha", 1),
						opt("carpet", "Koberec", 1),
						opt("mixed", "Kombinovaná", 1),
					),
				},
			},
			{
				ID:    "services",
				Title: "Služby",
				Fields: []Field{
					yesNo(OfficeKitchen, "Úklid kuchyňky", 1),
					yesNo(OfficeBathrooms, "Úklid sociálních zařízení", 1),
					yesNo(OfficeWindows, "Mytí oken v rámci úklidu", 1),
					yesNo(OfficeWasteSorting, "Třídění odpadu", 1),
					yesNo(OfficeConsumables, "Doplňování hygienických potřeb", 1),
				},
			},
			{
				ID:     "location",
				Title:  "Lokalita a poznámky",
				Fields: []Field{postalCode("zipCode"), notes("notes")},
			},
		},
		Conditions: []string{
			"Cena platí pro kancelářské prostory bez mimořádného znečištění.",
		},
		CommonServices: &CommonServices{
			Title: "Úklid kanceláří zahrnuje",
			Items: []string{
				"Vysávání a vytírání podlah",
				"Otírání pracovních stolů a parapetů",
				"Vynášení košů",
			},
		},
	}
}
