package entity

// Menu maps category to item name to price.
type Menu map[string]map[string]string

// DefaultMenu returns a fresh copy of the static menu served by get_menu.
func DefaultMenu() Menu {
	return Menu{
		"Drinks": {
			"Chai":   "INR 50",
			"Coffee": "INR 70",
		},
		"Veg": {
			"DalMakhni": "INR 250",
			"Panner":    "INR 400",
		},
	}
}
