package email

import (
	"math/rand"
	"strings"
)

// Curated financial tips appended to alert emails. Threshold alerts get
// category-specific advice where available; exceeded alerts get recovery
// advice.
var thresholdTips = map[string][]string{
	"general": {
		"Try the 50/30/20 rule: 50% needs, 30% wants, 20% savings",
		"Review your spending weekly to identify patterns and areas for improvement",
		"Create a shopping list before going to stores to avoid impulse purchases",
		"Consider using cash for discretionary spending to increase awareness",
	},
	"food": {
		"Meal prep on weekends to reduce food delivery expenses",
		"Cook at home more often, it is typically far cheaper than dining out",
		"Shop with a grocery list and stick to it to avoid overspending",
	},
	"transportation": {
		"Combine errands into one trip to save on fuel costs",
		"Consider public transportation or carpooling for regular commutes",
		"Walk or bike for short distances to save money",
	},
	"entertainment": {
		"Look for free community events and activities in your area",
		"Use your local library for books, movies, and free programs",
		"Share streaming subscriptions with family or friends",
	},
	"shopping": {
		"Wait 24 hours before making non-essential purchases",
		"Use price comparison apps to find the best deals",
		"Unsubscribe from promotional emails to reduce temptation",
	},
}

var exceededTips = []string{
	"Pause all non-essential spending for the rest of the month",
	"Review every transaction from the past week to identify overspending",
	"Reallocate funds from other categories if possible",
	"Increase your budget next month if this was a one-time event",
	"Set up spending alerts so you catch overruns earlier",
	"Schedule weekly money check-ins to stay on track",
}

// PickTips returns up to n tips relevant to the category and situation,
// shuffled so repeat alerts do not read identically.
func PickTips(category string, exceeded bool, n int) []string {
	var pool []string
	if exceeded {
		pool = append(pool, exceededTips...)
	} else {
		if tips, ok := thresholdTips[strings.ToLower(category)]; ok {
			pool = append(pool, tips...)
		}
		pool = append(pool, thresholdTips["general"]...)
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}
