package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/journeyfurther/excuseme/internal/options"
)

const maxScenarioLength = 1000

const maxNarrativeElements = 3

// validateGenerate checks a generation request against the option tables,
// returning the first violation's user-facing message or "" when the
// request is well formed. The check order is part of the endpoint's
// contract: required fields, then types, then enum membership, then length.
func validateGenerate(req *generateRequest, now time.Time) string {
	if req.Scenario == "" || req.Audience == "" {
		return "Missing required fields. Please provide scenario and audience."
	}

	if strings.TrimSpace(req.Scenario) == "" {
		return "Scenario must be a non-empty string."
	}

	if strings.TrimSpace(req.Audience) == "" {
		return "Audience must be a non-empty string."
	}

	if !options.ValidAudience(req.Audience) {
		return "Invalid audience option."
	}

	if len(req.Scenario) > maxScenarioLength {
		return "Scenario is too long. Please limit to 1000 characters."
	}

	if req.CustomOptions == nil {
		return ""
	}

	if style := req.CustomOptions.Style; style != "" && !options.ValidStyle(style) {
		return fmt.Sprintf("Invalid comedy style: %s", style)
	}

	if elements := req.CustomOptions.NarrativeElements; len(elements) > 0 {
		if len(elements) > maxNarrativeElements {
			return "Maximum 3 narrative elements allowed"
		}
		for _, id := range elements {
			if _, ok := options.ElementByID(id, now); !ok {
				return fmt.Sprintf("Invalid narrative element ID: %s", id)
			}
		}
	}

	if focus := req.CustomOptions.ExcuseFocus; focus != "" && !options.ValidFocus(focus) {
		return fmt.Sprintf("Invalid excuse focus: %s", focus)
	}

	return ""
}
