// Package options is the canonical source of truth for the excuse
// generator's option tables: audiences, comedy styles, narrative elements
// (including the seasonal, date-gated ones), and excuse-focus directives.
package options

import (
	"strings"
	"time"
)

// Audiences is the fixed set of audiences a request may target.
var Audiences = []string{
	"A Colleague",
	"Your Manager",
	"A Direct Report",
	"The Client",
	"HR",
	"Finance",
	"A Random Stranger On LinkedIn",
	"Robin Skidmore",
}

// ValidAudience reports whether audience is one of the fixed set.
func ValidAudience(audience string) bool {
	for _, a := range Audiences {
		if a == audience {
			return true
		}
	}
	return false
}

// SurpriseMe is the pseudo-style that requests a random pick from the
// mainstream pool.
const SurpriseMe = "surprise-me"

// ComedyStyles lists every selectable style in canonical form.
var ComedyStyles = []string{
	"Absurdist",
	"Observational",
	"Deadpan",
	"Hyperbolic",
	"Passive-aggressive",
	"Ironic",
	"Meta",
	"Paranoid",
	"Corporate-jargon",
}

// RandomComedyStyles is the pool used when the caller asks for
// "surprise-me" or supplies no style. Corporate-jargon and
// Passive-aggressive are niche enough that they are only used when
// explicitly requested.
var RandomComedyStyles = []string{
	"Absurdist",
	"Observational",
	"Deadpan",
	"Hyperbolic",
	"Ironic",
	"Meta",
	"Paranoid",
}

var styleAliases = map[string]string{
	"absurdist":          "Absurdist",
	"observational":      "Observational",
	"deadpan":            "Deadpan",
	"hyperbolic":         "Hyperbolic",
	"passive-aggressive": "Passive-aggressive",
	"ironic":             "Ironic",
	"meta":               "Meta",
	"paranoid":           "Paranoid",
	"corporate-jargon":   "Corporate-jargon",
}

// NormalizeStyle maps the frontend's lowercase-hyphen style ids onto
// canonical style names. Unknown values pass through unchanged so the
// caller can reject them against ComedyStyles.
func NormalizeStyle(style string) string {
	if canonical, ok := styleAliases[strings.ToLower(style)]; ok {
		return canonical
	}
	return style
}

// ValidStyle reports whether style (after normalization) is a known comedy
// style or the literal "surprise-me".
func ValidStyle(style string) bool {
	if style == SurpriseMe {
		return true
	}
	normalized := NormalizeStyle(style)
	for _, s := range ComedyStyles {
		if s == normalized {
			return true
		}
	}
	return false
}

// NarrativeElement is an optional thematic detail ("special ingredient")
// the generator weaves into the comedic excuse.
type NarrativeElement struct {
	ID         string
	PromptText string
}

// AlwaysAvailableElements are selectable year-round.
var AlwaysAvailableElements = []NarrativeElement{
	{ID: "injured-fox", PromptText: "an injured fox (Journey Further mascot) - optionally with a bandaged paw and/or missing ear, or just generally injured with unspecified injuries"},
	{ID: "office-dog", PromptText: "a company office dog causing chaos or getting involved"},
	{ID: "duck-clipboard", PromptText: "a suspicious duck holding a clipboard, taking notes and observing critically"},
	{ID: "client-lunch-leftovers", PromptText: "leftover food from a client lunch or meeting catering gone wrong"},
	{ID: "broken-coffee-machine", PromptText: "a malfunctioning office coffee machine at the worst possible moment"},
	{ID: "high-vis-person", PromptText: "a mysterious person in high-visibility clothing appearing at impossible moments"},
	{ID: "yorkshire-pudding", PromptText: "a Yorkshire pudding - optionally sentient/conscious or just a normal Yorkshire pudding involved in the story somehow"},
	{ID: "transatlantic-flight", PromptText: "transatlantic flight chaos, travel mishaps, jet lag, timezone confusion, or international travel comedy (keep it safe for work, no real disasters)"},
	{ID: "working-fax-machine", PromptText: "an ancient fax machine that mysteriously still works, sending or receiving something important"},
	{ID: "time-travelling-victorian", PromptText: "a confused Victorian gentleman from the past, complete with top hat and monocle, bewildered by modern technology"},
}

// LimitedTimeElement is a narrative element only selectable inside its
// month/day window.
type LimitedTimeElement struct {
	NarrativeElement
	StartMonth time.Month
	EndMonth   time.Month
	StartDay   int
	EndDay     int
}

// LimitedTimeElements are the seasonal elements, one per month.
var LimitedTimeElements = []LimitedTimeElement{
	{NarrativeElement{"new-year-new-me", "New Year's resolutions failing spectacularly, self-improvement attempts going wrong, or January motivation already abandoned"}, time.January, time.January, 1, 31},
	{NarrativeElement{"valentines-day", "Valentine's Day romantic mishaps, cupid causing chaos, or love-related disasters"}, time.February, time.February, 1, 29},
	{NarrativeElement{"st-patricks-day", "St. Patrick's Day celebrations, Guinness-fueled chaos, Irish themes, or leprechauns causing mischief"}, time.March, time.March, 1, 31},
	{NarrativeElement{"easter-bunny", "Easter Bunny causing chaos, chocolate-related disasters, or egg hunt mishaps"}, time.April, time.April, 1, 30},
	{NarrativeElement{"cinco-de-mayo", "Cinco de Mayo celebrations, Mexican food disasters, mariachi bands, or tequila-related incidents"}, time.May, time.May, 1, 31},
	{NarrativeElement{"summer-solstice", "Summer solstice phenomena, longest day of the year chaos, midsummer madness, or Stonehenge-related mishaps (optional reference)"}, time.June, time.June, 1, 30},
	{NarrativeElement{"independence-day", "4th of July celebrations, fireworks disasters, American patriotism gone wild, or BBQ mishaps"}, time.July, time.July, 1, 31},
	{NarrativeElement{"school-holidays", "summer school holiday chaos, vacation disasters, kids off school causing mayhem, or family holiday mishaps"}, time.August, time.August, 1, 31},
	{NarrativeElement{"oktoberfest", "Oktoberfest celebrations, beer festival chaos, German themes, or pretzel-related incidents"}, time.September, time.September, 1, 30},
	{NarrativeElement{"halloween", "Halloween spookiness, supernatural events, costume mishaps, or trick-or-treat disasters"}, time.October, time.October, 1, 31},
	{NarrativeElement{"black-friday", "Black Friday shopping chaos, retail madness, e-commerce crashes, or deal-hunting disasters"}, time.November, time.November, 1, 30},
	{NarrativeElement{"christmas", "Christmas chaos, Santa Claus mishaps, festive disasters, or elf-related problems"}, time.December, time.December, 1, 31},
}

// ActiveLimitedElements returns the limited-time elements whose window
// contains the given instant. Windows that span a month boundary are
// interpreted as "on or after the start day in the start month, or on or
// before the end day in the end month".
func ActiveLimitedElements(now time.Time) []LimitedTimeElement {
	month := now.Month()
	day := now.Day()

	var active []LimitedTimeElement
	for _, e := range LimitedTimeElements {
		if e.StartMonth == e.EndMonth {
			if month == e.StartMonth && day >= e.StartDay && day <= e.EndDay {
				active = append(active, e)
			}
			continue
		}
		if (month == e.StartMonth && day >= e.StartDay) || (month == e.EndMonth && day <= e.EndDay) {
			active = append(active, e)
		}
	}
	return active
}

// AvailableElements returns the union of the always-available elements and
// the limited-time elements active at the given instant.
func AvailableElements(now time.Time) []NarrativeElement {
	elements := make([]NarrativeElement, 0, len(AlwaysAvailableElements)+2)
	elements = append(elements, AlwaysAvailableElements...)
	for _, e := range ActiveLimitedElements(now) {
		elements = append(elements, e.NarrativeElement)
	}
	return elements
}

// ElementByID looks up an element in the pool available at the given
// instant.
func ElementByID(id string, now time.Time) (NarrativeElement, bool) {
	for _, e := range AvailableElements(now) {
		if e.ID == id {
			return e, true
		}
	}
	return NarrativeElement{}, false
}

// FocusOption narrows what or whom the comedic excuse should blame.
type FocusOption struct {
	ID         string
	PromptText string
}

// FocusLetAIDecide is the focus id meaning "no directive".
const FocusLetAIDecide = "let-ai-decide"

// FocusBlamePersona is the focus id whose prompt text is built from the
// persona biography instead of a static directive.
const FocusBlamePersona = "blame-robin-skidmore"

// personaPlaceholder marks where the persona block is substituted.
const personaPlaceholder = "ROBIN_SKIDMORE_PERSONA_PLACEHOLDER"

// FocusOptions lists every selectable excuse focus.
var FocusOptions = []FocusOption{
	{ID: FocusLetAIDecide, PromptText: ""},
	{ID: "blame-technology", PromptText: "The excuse should primarily blame technology, apps, devices, or digital systems. Use the examples for flavor but create your own variations - don't use these exact phrases."},
	{ID: "blame-algorithm", PromptText: "The excuse should primarily blame algorithm changes or platform updates - examples include Google core updates, Meta algorithm changes, TikTok algorithm shifts, YouTube recommendation changes, or search engines/social platforms constantly moving the goalposts. Use these as inspiration but vary your language."},
	{ID: "blame-budget", PromptText: "The excuse should primarily blame insufficient budget or cost constraints - examples include \"champagne expectations on lemonade money\" or clients wanting enterprise results with startup budgets. Use these concepts as flavor but create your own phrasing."},
	{ID: "blame-seasonality", PromptText: "The excuse should primarily blame seasonal trends or cyclical patterns. Feel free to reference any seasonal trend you recognize: Q4 chaos, Black Friday madness, Christmas campaign rushes, summer slowdowns, January recovery, back-to-school surges, tax season, holiday periods, end-of-financial-year, or any other cyclical industry patterns making everything harder."},
	{ID: "blame-client", PromptText: "The excuse should primarily blame typical difficult client behaviors. Examples include unclear requirements, contradictory feedback, last-minute changes, scope creep, or classic requests like \"can you make the logo bigger?\" - but feel free to reference any typical client behavior that causes issues for agencies. Don't just use these examples verbatim."},
	{ID: "blame-competitor", PromptText: "The excuse should primarily blame competitors doing something unexpected, competitor campaigns causing disruption, or rival agencies/brands making strategic moves that complicated everything. Use this theme as inspiration but vary your approach."},
	{ID: "blame-meetings", PromptText: "The excuse should primarily blame excessive meetings, syncs, check-ins, all-hands, stand-ups, retrospectives, alignment sessions, or calendar Tetris preventing actual work from getting done. Use these examples for flavor but create varied phrasing."},
	{ID: "blame-universe", PromptText: "The excuse should primarily blame cosmic forces, fate, destiny, universal conspiracies, or the fundamental nature of reality conspiring against success."},
	{ID: FocusBlamePersona, PromptText: personaPlaceholder},
}

// FocusByID looks up a focus option.
func FocusByID(id string) (FocusOption, bool) {
	for _, f := range FocusOptions {
		if f.ID == id {
			return f, true
		}
	}
	return FocusOption{}, false
}

// ValidFocus reports whether id is a defined excuse focus.
func ValidFocus(id string) bool {
	_, ok := FocusByID(id)
	return ok
}
