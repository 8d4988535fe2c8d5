package form

// OneTimeCleaning is a one-off cleaning billed per hour.
func OneTimeCleaning() *Config {
	return &Config{
		ID:              ServiceOneTimeCleaning,
		Title:           "Jednorázový úklid",
		Description:     "Jednorázový úklid bytu, domu nebo kanceláře.",
		BasePrice:       450,
		Strategy:        StrategyGeneric,
		Billing:         BillingHourly,
		PostalCodeField: "zipCode",
		NoteField:       "notes",
		Sections: []Section{
			{
				ID:    "scope",
				Title: "Rozsah úklidu",
				Fields: []Field{
					selectField("spaceArea", "Velikost prostor", true,
						opt("up-to-50", "Do 50 m²", 1),
						opt("50-80", "50 až 80 m²", 1.1),
						opt("80-120", "80 až 120 m²", 1.2),
						opt("over-120", "Více než 120 m²", 1.35),
					),
					radio("cleaningType", "Typ úklidu", true,
						opt("standard", "Běžný úklid", 1),
						opt("deep", "Důkladný úklid", 1.2),
						opt("after-renovation", "Úklid po rekonstrukci", 1.4),
					),
					radio("cleaningSupplies", "Čisticí prostředky", true,
						opt("ours", "Dodá HandyHands", 1.1),
						opt("customer", "Vlastní prostředky zákazníka", 1),
					),
					yesNo("weekendService", "Úklid o víkendu", 1.2),
					checkbox("additionalTasks", "Práce navíc",
						addon("oven", "Vyčištění trouby", 350),
						addon("fridge", "Vyčištění lednice", 250),
						opt("windows", "Mytí oken", 1.1),
					),
				},
			},
			{
				ID:     "location",
				Title:  "Lokalita a poznámky",
				Fields: []Field{postalCode("zipCode"), notes("notes")},
			},
		},
		Conditions: []string{
			"Účtuje se skutečně odpracovaný čas, nejméně však uvedený minimální počet hodin.",
		},
		Hourly: &HourlyPricing{
			MinimumHoursField: "spaceArea",
			MinimumHours: map[string]float64{
				"up-to-50": 3,
				"50-80":    4,
				"80-120":   5,
				"over-120": 7,
			},
		},
	}
}

// HandymanServices covers window washing and small repairs billed per hour.
func HandymanServices() *Config {
	return &Config{
		ID:              ServiceHandyman,
		Title:           "Mytí oken a hodinový manžel",
		Description:     "Mytí oken, drobné opravy a údržba.",
		BasePrice:       390,
		Strategy:        StrategyGeneric,
		Billing:         BillingHourly,
		PostalCodeField: "zipCode",
		NoteField:       "notes",
		Sections: []Section{
			{
				ID:    "scope",
				Title: "Rozsah prací",
				Fields: []Field{
					radio("serviceKind", "Druh služby", true,
						opt("window-washing", "Mytí oken", 1),
						opt("handyman", "Drobné opravy", 1.15),
						opt("both", "Mytí oken i opravy", 1.25),
					),
					selectField("spaceArea", "Rozsah", true,
						opt("small", "Do 10 oken / drobná oprava", 1),
						opt("medium", "10 až 20 oken", 1.1),
						opt("large", "Více než 20 oken", 1.25),
					),
					yesNo("heightWork", "Práce ve výšce", 1.2),
					radio("tools", "Nářadí a prostředky", true,
						opt("ours", "Dodá HandyHands", 1.05),
						opt("customer", "Zajistí zákazník", 1),
					),
				},
			},
			{
				ID:     "location",
				Title:  "Lokalita a poznámky",
				Fields: []Field{postalCode("zipCode"), notes("notes")},
			},
		},
		Hourly: &HourlyPricing{
			MinimumHoursField: "spaceArea",
			MinimumHours: map[string]float64{
				"small":  2,
				"medium": 3,
				"large":  5,
			},
		},
	}
}
