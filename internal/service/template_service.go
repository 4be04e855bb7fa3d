// internal/service/template_service.go
package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/unclebandit/fitkitchen-backend/internal/model"
)

const DefaultWelcomeTemplate = "Hi {name}, welcome to FitKitchen! We're here to help you {health_goals}."

// RenderTemplate replaces {key} placeholders in one pass, so substituted
// values are never expanded again. Empty values render as N/A.
func RenderTemplate(template string, data map[string]string) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		v := data[k]
		if v == "" {
			v = "N/A"
		}
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// CustomerPlaceholders exposes the customer fields a template may reference.
func CustomerPlaceholders(c model.Customer) map[string]string {
	return map[string]string{
		"id":           strconv.Itoa(c.ID),
		"name":         c.Name,
		"age":          strconv.Itoa(c.Age),
		"health_goals": c.HealthGoals,
	}
}
