package handler

import (
	"html/template"
	"strconv"
)

// DrinksPath is the drink collection.
func DrinksPath() string {
	return "/drinks"
}

func NewDrinkPath() string {
	return DrinksPath() + "/new"
}

func DrinkPath(id int64) string {
	return DrinksPath() + "/" + strconv.FormatInt(id, 10)
}

func EditDrinkPath(id int64) string {
	return DrinkPath(id) + "/edit"
}

// PathFuncs exposes the path helpers to the view templates.
func PathFuncs() template.FuncMap {
	return template.FuncMap{
		"drinksPath":    DrinksPath,
		"newDrinkPath":  NewDrinkPath,
		"drinkPath":     DrinkPath,
		"editDrinkPath": EditDrinkPath,
	}
}
