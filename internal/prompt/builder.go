// Package prompt assembles the text prompt sent to the generative AI
// providers. Assembly is a pure function over the request's options: for
// fixed inputs the rendered prompt is byte-identical across calls. The only
// randomness is style selection when the caller asks for "surprise-me",
// and that is injected so tests can pin it.
package prompt

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/journeyfurther/excuseme/internal/options"
)

// Input carries the validated request fields the builder renders from.
// Style must already be a canonical style name (see ResolveStyle).
// ElementIDs and FocusID are assumed valid; unknown ids are skipped.
type Input struct {
	Scenario   string
	Audience   string
	Style      string
	ElementIDs []string
	FocusID    string
	Now        time.Time
}

// ResolveStyle picks the concrete comedic style for an excuse. An explicit
// style (anything but empty or "surprise-me") is normalized and used when
// known; otherwise a style is drawn uniformly from the mainstream pool.
// A nil rng falls back to the shared global source.
func ResolveStyle(requested string, rng *rand.Rand) string {
	if requested != "" && requested != options.SurpriseMe {
		normalized := options.NormalizeStyle(requested)
		for _, s := range options.ComedyStyles {
			if s == normalized {
				return normalized
			}
		}
	}

	pool := options.RandomComedyStyles
	if rng != nil {
		return pool[rng.Intn(len(pool))]
	}
	return pool[rand.Intn(len(pool))]
}

// Build renders the full prompt from an ordered list of sections. Optional
// sections (special ingredients, excuse focus) render to the empty string
// when absent so the surrounding layout stays byte-stable.
func Build(in Input) string {
	var b strings.Builder
	for _, section := range []string{
		preamble(),
		structureFundamentals,
		languageAndScenario(in.Scenario, in.Audience),
		mundaneExcuseSection(),
		comedicExcuseHeader(in.Style),
		styleInstructions[in.Style],
		ingredientsSection(in.ElementIDs, in.Now),
		focusSection(in.FocusID),
		requirementsSection(in.Audience),
		outputContract(in.Style),
	} {
		b.WriteString(section)
	}
	return b.String()
}

func preamble() string {
	return `You are an expert excuse generator creating highly varied, genuinely funny excuses for comedy entertainment. Generate TWO distinct excuses for the following scenario.

`
}

func languageAndScenario(scenario, audience string) string {
	return fmt.Sprintf(`

LANGUAGE: Use British English spelling throughout (realise, colour, favour, whilst, etc.)

SCENARIO: %s
AUDIENCE: %s

Generate TWO excuses - one mundane, one comedic:

`, scenario, audience)
}

func mundaneExcuseSection() string {
	return `═══════════════════════════════════════════════════════════
EXCUSE 1 - THE BELIEVABLE EXCUSE (Mundane & Practical)
═══════════════════════════════════════════════════════════

This is your BORING excuse. Make it:
- Completely mundane and realistic
- Something that actually could have happened
- Short and to the point (2-5 sentences)
- An EXCUSE (explain what prevented you), not an apology
- Title: Short and boring (3-5 words) like "Traffic Delay" or "Phone Battery Died"

Examples of good mundane excuses:
• "My alarm didn't go off"
• "I got stuck in traffic"
• "My phone battery died and I didn't see your message"
• "I had a last-minute family emergency"

The humor comes from how BORING and ORDINARY this is compared to excuse 2.

`
}

func comedicExcuseHeader(style string) string {
	return fmt.Sprintf(`═══════════════════════════════════════════════════════════
EXCUSE 2 - THE RISKY EXCUSE (%s Comedy Style)
═══════════════════════════════════════════════════════════

**REMEMBER: This is an EXCUSE (shifts blame externally), not an explanation (admits fault).**

`, style)
}

// ingredientsSection renders the selected narrative elements as a bulleted
// block, framed as optional seasoning rather than mandatory plot points.
// Returns "" when no elements are selected.
func ingredientsSection(elementIDs []string, now time.Time) string {
	if len(elementIDs) == 0 {
		return ""
	}

	var lines []string
	for _, id := range elementIDs {
		if e, ok := options.ElementByID(id, now); ok {
			lines = append(lines, "- "+e.PromptText)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	return fmt.Sprintf(`
SPECIAL INGREDIENTS (Weave these in naturally):
Your excuse should organically incorporate these elements:
%s

These elements should enhance the comedy and fit naturally into your narrative.
Don't force them or make them feel like a checklist - let them arise organically
from the story you're telling. They're seasoning, not the main dish.
`, strings.Join(lines, "\n"))
}

// focusSection renders the excuse-focus directive. The blame-persona focus
// substitutes the persona biography with mixing instructions so output
// varies run to run; "let-ai-decide" and unknown ids render nothing.
func focusSection(focusID string) string {
	if focusID == "" || focusID == options.FocusLetAIDecide {
		return ""
	}

	focus, ok := options.FocusByID(focusID)
	if !ok || focus.PromptText == "" {
		return ""
	}

	text := focus.PromptText
	if focusID == options.FocusBlamePersona {
		text = personaFocusText()
	}

	return fmt.Sprintf(`
EXCUSE FOCUS:
%s
This is your comedic angle, but you still have creative freedom in execution.
`, text)
}

func personaFocusText() string {
	return fmt.Sprintf(`The excuse should blame Robin Skidmore, CEO & Founder of Journey Further.

%s

IMPORTANT MIXING INSTRUCTIONS:
- Mix generic CEO/founder stereotypes with Robin-specific details to keep excuses varied
- Sometimes lean heavily on generic CEO tropes: ambitious, workaholic, strategic pivots,
  "synergy" obsession, motivational speaker energy, hustle culture, vision boards, etc.
- Sometimes weave in Robin-specific details from the persona above
- Sometimes combine both approaches for maximum comedy
- Keep the tone affectionate and cheeky, never mean-spirited
- Make it clear the excuse is blaming Robin in a playful way (not genuinely malicious)
- You may refer to him informally as "Robin" if it fits the tone, or use "Robin Skidmore" for more formal excuses

This ensures each excuse about Robin feels fresh and unpredictable, not repetitive.`, options.Persona)
}

func requirementsSection(audience string) string {
	return fmt.Sprintf(`
REQUIREMENTS:
- **START WITH DEFENSIVE FRAMING**: Open with a phrase that establishes you're not at fault (e.g., "Look, I know how this looks, but...", "This wasn't my fault -", "Before you blame me..."). Vary your opening - don't use the same defensive phrase repeatedly.
- **CRITICAL: Shift blame externally - make it someone/something else's fault**
- **Address the FULL scenario**: If they mention being sick, late, missing something, etc. - address ALL of it
- Length: 3-7 sentences (you have room to develop the comedy)
- Make it FUNNY and highly creative within this comedic style
- Title: Short and punchy (4-6 words max)
- Appropriate for %s but push comedic boundaries
- Be SPECIFIC and VIVID - avoid vague generic humor
- Find FRESH angles - avoid overused tropes for this style

FORMATTING - VERY IMPORTANT:
- If your excuse is 4+ sentences, break it into 2-3 paragraphs for readability
- Use double line breaks (\n\n) to separate paragraphs
- Each paragraph should be 2-3 sentences maximum
- This makes longer excuses easier to read and more impactful

CLOSING REINFORCEMENT (for longer excuses):
- If your excuse is 4+ sentences, consider ending with a final statement that reinforces blame deflection
- This helps remind the reader "this is an excuse, not just a story"
- Keep it natural to your comedy style - don't force it if the excuse already ends strongly
- Example closing types:
  • Blame deflection: "So really, who's to say this was my responsibility?"
  • Rhetorical question: "How was I supposed to know the algorithm would do that?"
  • Matter-of-fact conclusion: "Clearly beyond my control."
  • Victim framing: "If anything, I'm the real victim here."
- This is OPTIONAL - only use if it strengthens the excuse and flows naturally

CREATIVITY GUIDELINES:
✓ Be surprising and unexpected
✓ Layer multiple comedic elements
✓ Use vivid, specific details
✓ Make it distinctly different from generic "outrageous" excuses
✗ Don't rely on shock value alone
✗ Don't use tired clichés
✗ Don't be vague or generic
`, audience)
}

// outputContract states the literal JSON-only response format. The exact
// wording matters: providers are told to return raw JSON with exactly two
// keys and no markdown fencing.
func outputContract(style string) string {
	return fmt.Sprintf(`
Remember: The two excuses should be POLAR OPPOSITES - one boring and realistic, one wildly comedic using %s style.

Return your response as a JSON object with this EXACT structure:
{
  "excuse1": {
    "title": "short boring title (3-5 words)",
    "text": "the mundane believable excuse (2-5 sentences)"
  },
  "excuse2": {
    "title": "short punchy title (4-6 words)",
    "text": "the %s comedy excuse (3-7 sentences)"
  }
}

DO NOT include any text outside the JSON object. DO NOT use markdown code blocks. Return ONLY the raw JSON.`, style, style)
}
