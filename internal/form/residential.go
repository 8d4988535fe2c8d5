package form

import "math"

// ResidentialBuilding is the cleaning of common areas of apartment buildings.
func ResidentialBuilding() *Config {
	floorCoefficient := func(n int) float64 {
		return math.Round((1+float64(n-4)*0.12)*100) / 100
	}
	apartmentCoefficient := func(n int) float64 {
		switch {
		case n <= 2:
			return 0.9
		case n <= 4:
			return 1
		case n <= 6:
			return 1.1
		default:
			return 1.2
		}
	}

	return &Config{
		ID:              ServiceResidentialBuilding,
		Title:           "Úklid společných prostor bytových domů",
		Description:     "Pravidelný úklid schodišť, chodeb a vstupních prostor.",
		BasePrice:       1800,
		Strategy:        StrategyGeneric,
		Billing:         BillingMonthly,
		PostalCodeField: "zipCode",
		NoteField:       "notes",
		Sections: []Section{
			{
				ID:    "building",
				Title: "Informace o domě",
				Fields: []Field{
					radio("cleaningFrequency", "Četnost úklidu", true,
						opt("weekly", "1x týdně", 1),
						opt("twice-weekly", "2x týdně", 1.85),
						opt("biweekly", "1x za 14 dní", 0.6),
						opt("monthly", "1x měsíčně", 0.35),
					),
					selectField("aboveGroundFloors", "Počet nadzemních podlaží", true, countOptions(1, 12, floorCoefficient)...),
					selectField("undergroundFloors", "Počet podzemních podlaží", true,
						opt("0", "0", 1),
						opt("1", "1", 1.08),
						opt("2", "2", 1.16),
						opt("3", "3", 1.24),
					),
					selectField("apartmentsPerFloor", "Počet bytů na patře", true, countOptions(1, 8, apartmentCoefficient)...),
					yesNo("hasElevator", "Výtah v domě", 1.05),
					radio("hasHotWater", "Teplá voda v domě", true,
						opt("yes", "Ano", 1),
						opt("no", "Ne", 1.03),
					),
					radio("buildingPeriod", "Období výstavby domu", true,
						opt("pre-1945", "Před rokem 1945", 1.1),
						opt("1945-1990", "1945 až 1990", 1.05),
						opt("post-1990", "Po roce 1990", 1),
					),
				},
			},
			{
				ID:    "general",
				Title: "Generální úklid",
				Fields: []Field{
					yesNo("generalCleaning", "Mám zájem o generální úklid", 1),
					&Conditional{
						ID:        "generalCleaningDetails",
						Condition: When("generalCleaning", OpEquals, "yes"),
						Fields: []Field{
							radio("generalCleaningType", "Četnost generálního úklidu", true,
								opt("twice-yearly", "2x ročně", 1),
								opt("yearly", "1x ročně", 1),
								opt("quarterly", "4x ročně", 1),
							),
							selectField("windowsPerFloor", "Počet oken na patře", true,
								opt("up-to-4", "Do 4", 1),
								opt("5-8", "5 až 8", 1.2),
								opt("9-12", "9 až 12", 1.4),
								opt("over-12", "Více než 12", 1.6),
							),
							selectField("floorsWithWindows", "Počet pater s okny", true,
								opt("up-to-3", "Do 3", 0.8),
								opt("4-6", "4 až 6", 1),
								opt("7-plus", "7 a více", 1.3),
							),
							radio("windowType", "Typ oken", true,
								opt("plastic", "Plastová okna", 0.9),
								opt("single", "Jednoduchá okna", 1),
								opt("double", "Zdvojená (špaletová) okna", 1.3),
							),
							&Conditional{
								ID: "basement",
								Condition: AllOf(
									When("undergroundFloors", OpIsNotEmpty, nil),
									When("undergroundFloors", OpNotEquals, "0"),
								),
								Fields: []Field{
									radio("basementCleaning", "Úklid sklepních prostor", true,
										opt("regular", "V rámci pravidelného úklidu", 1),
										opt("general", "Pouze při generálním úklidu", 0.95),
									),
									checkbox("basementCleaningDetails", "Sklepní prostory k úklidu",
										opt("corridors", "Chodby", 1.05),
										opt("storage", "Kočárkárna a sušárna", 1.08),
										opt("technical", "Technické místnosti", 1.1),
									),
								},
							},
						},
					},
				},
			},
			{
				ID:    "extras",
				Title: "Doplňkové služby",
				Fields: []Field{
					checkbox("additionalServices", "Doplňkové služby",
						addon("bins", "Mytí popelnic", 150),
						addon("mats", "Pronájem čisticích rohoží", 250),
						opt("disinfection", "Dezinfekce klik a madel", 1.03),
						addon("entrance-glass", "Mytí skleněných výplní vchodových dveří", 120),
					),
					yesNo("winterMaintenance", "Zimní údržba chodníků", 1),
					&Alert{
						ID:      "winterInfo",
						Title:   "Zimní údržba",
						Message: "Paušál za zimní údržbu se účtuje od 15. listopadu do 15. března a není součástí měsíční ceny.",
						Variant: "info",
					},
				},
			},
			{
				ID:     "location",
				Title:  "Lokalita a poznámky",
				Fields: []Field{postalCode("zipCode"), notes("notes")},
			},
		},
		Conditions: []string{
			"Cena je orientační a bude potvrzena po prohlídce objektu.",
			"Čisticí prostředky a pomůcky jsou v ceně.",
		},
		CommonServices: &CommonServices{
			Title: "Pravidelný úklid zahrnuje",
			Items: []string{
				"Zametání a mytí schodišť a chodeb",
				"Otírání zábradlí, klik a vypínačů",
				"Úklid vstupních prostor a výtahu",
				"Mytí vstupních dveří",
			},
		},
		GeneralCleaning: &GeneralCleaningPricing{
			OptInField: "generalCleaning",
			OptInValue: "yes",
			TypeField:  "generalCleaningType",
			BasePrices: map[string]float64{
				"twice-yearly": 3200,
				"yearly":       3800,
				"quarterly":    2900,
			},
			CoefficientFields: []string{
				"windowsPerFloor",
				"floorsWithWindows",
				"windowType",
				"basementCleaning",
				"basementCleaningDetails",
				"buildingPeriod",
			},
			ExclusiveFields: []string{
				"windowsPerFloor",
				"floorsWithWindows",
				"windowType",
				"basementCleaningDetails",
			},
		},
		Winter: &WinterPricing{OptInField: "winterMaintenance", OptInValue: "yes"},
	}
}
