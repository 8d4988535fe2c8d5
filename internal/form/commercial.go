package form

// CommercialSpaces is the recurring cleaning of shops, restaurants and similar.
func CommercialSpaces() *Config {
	return &Config{
		ID:              ServiceCommercialSpaces,
		Title:           "Úklid komerčních prostor",
		BasePrice:       2600,
		Strategy:        StrategyGeneric,
		Billing:         BillingMonthly,
		PostalCodeField: "zipCode",
		NoteField:       "notes",
		Sections: []Section{
			{
				ID:    "scope",
				Title: "Prostory",
				Fields: []Field{
					radio("cleaningFrequency", "Četnost úklidu", true,
						opt("daily", "Denně", 4.5),
						opt("3x-weekly", "3x týdně", 2.8),
						opt("2x-weekly", "2x týdně", 1.9),
						opt("weekly", "1x týdně", 1),
					),
					radio("spaceType", "Typ prostor", true,
						opt("shop", "Obchod", 1),
						opt("restaurant", "Restaurace a kavárna", 1.25),
						opt("warehouse", "Sklad", 0.85),
						opt("medical", "Ordinace", 1.3),
					),
					selectField("spaceArea", "Plocha", true,
						opt("up-to-100", "Do 100 m²", 1),
						opt("100-250", "100 až 250 m²", 1.6),
						opt("250-500", "250 až 500 m²", 2.4),
						opt("over-500", "Více než 500 m²", 3.5),
					),
					checkbox("additionalServices", "Doplňkové služby",
						addon("consumables", "Doplňování hygienických potřeb", 400),
						opt("waste", "Vynášení odpadu", 1.04),
						addon("shop-windows", "Mytí výloh", 600),
					),
				},
			},
			{
				ID:     "location",
				Title:  "Lokalita a poznámky",
				Fields: []Field{postalCode("zipCode"), notes("notes")},
			},
		},
	}
}

// HomeCleaning is recurring household cleaning, sold either as a monthly
// tariff or at an hourly rate.
func HomeCleaning() *Config {
	return &Config{
		ID:              ServiceHomeCleaning,
		Title:           "Pravidelný úklid domácnosti",
		BasePrice:       2400,
		Strategy:        StrategyGeneric,
		Billing:         BillingMonthly,
		PostalCodeField: "zipCode",
		NoteField:       "notes",
		PricingMode: &PricingMode{
			Field: "pricingMode",
			BasePrices: map[string]float64{
				"monthly-tariff": 2400,
				"hourly-rate":    380,
			},
		},
		Sections: []Section{
			{
				ID:    "scope",
				Title: "Domácnost",
				Fields: []Field{
					radio("pricingMode", "Způsob účtování", true,
						opt("monthly-tariff", "Měsíční paušál", 1),
						opt("hourly-rate", "Hodinová sazba", 1),
					),
					radio("cleaningFrequency", "Četnost úklidu", true,
						opt("weekly", "1x týdně", 1),
						opt("biweekly", "1x za 14 dní", 0.55),
						opt("twice-weekly", "2x týdně", 1.9),
					),
					radio("apartmentSize", "Velikost domácnosti", true,
						opt("small", "1+kk až 2+1", 0.8),
						opt("medium", "3+kk až 3+1", 1),
						opt("large", "4+kk a větší", 1.3),
						opt("house", "Rodinný dům", 1.6),
					),
					yesNo("pets", "Domácí mazlíčci", 1.1),
					checkbox("additionalTasks", "Práce navíc",
						addon("ironing", "Žehlení", 300),
						opt("windows", "Mytí oken", 1.08),
						addon("balcony", "Úklid balkonu", 150),
					),
				},
			},
			{
				ID:     "location",
				Title:  "Lokalita a poznámky",
				Fields: []Field{postalCode("zipCode"), notes("notes")},
			},
		},
	}
}
