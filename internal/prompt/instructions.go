package prompt

// styleInstructions holds the per-style directive block rendered into the
// comedic excuse section. Keys are canonical style names from the options
// package.
var styleInstructions = map[string]string{
	"Absurdist": `Use ABSURDIST comedy:
- Introduce surreal, impossible scenarios that defy logic and physics
- Include talking animals, sentient objects, or things that shouldn't exist
- Make the bizarre feel matter-of-fact (quantum mechanics in daily life, time paradoxes)
- Layer absurdity upon absurdity - don't settle for one weird thing
- Examples of absurdist elements: parallel dimensions, objects with personalities, animals doing human jobs, impossible weather
- Avoid clichés: Don't just say "aliens did it" - be creative and specific`,

	"Observational": `Use OBSERVATIONAL comedy:
- Point out the ironic, annoying, or contradictory aspects of everyday situations
- "Have you ever noticed..." style observations about modern life
- **CRITICAL: Blame the system/design/others who created the situation - never yourself**
- Highlight how the situation was DESIGNED to cause failure or problems
- Make it relatable - focus on universal frustrations caused by external forces
- Examples: smartphone glitches at crucial moments (blame the OS update), autocorrect disasters (blame the algorithm), social media timing fails (blame the platform)
- **The observation should deflect responsibility: "The system/design/people made this inevitable"**
- Avoid clichés: Find fresh angles on common annoyances, not tired old "traffic sucks" jokes`,

	"Deadpan": `Use DEADPAN comedy:
- State completely outrageous things in a serious, matter-of-fact tone
- No exclamation marks, no dramatics - just calm delivery of absurd content
- Use formal, professional language to describe ridiculous situations
- The humor comes from the contrast between tone and content
- Examples: "I was engaged in a minor territorial dispute with a swan" or "A series of cascading failures in my morning routine"
- Avoid clichés: Don't be boring - make the content wild but the delivery flat`,

	"Hyperbolic": `Use HYPERBOLIC comedy:
- Blow everything wildly out of proportion
- Use extreme exaggerations: "worst disaster in human history", "literally impossible"
- Stack superlatives and extremes: epic, catastrophic, unprecedented
- Make small problems into world-ending events
- Examples: missed alarm becomes "apocalyptic chronological failure", traffic becomes "automotive gridlock of biblical proportions"
- Avoid clichés: Don't just add "super" or "really" - go ridiculously over the top`,

	"Passive-aggressive": `Use PASSIVE-AGGRESSIVE comedy:
- Shift blame to others whilst maintaining plausible deniability
- Use phrases like "I would have finished if SOMEONE had...", "Apparently nobody thought to..."
- Imply incompetence or oversight from others without directly stating it
- Make it clear you're the victim of others' failures
- Examples: "I was waiting for the brief that never arrived" or "I assumed SOMEONE would mention the deadline change"
- Avoid clichés: Don't be overtly hostile - keep it subtle and pointed`,

	"Ironic": `Use IRONIC comedy:
- Say the opposite of what you mean to highlight contradictions
- Point out situations where the opposite of what should happen occurs
- Use dramatic irony - when trying to fix something makes it worse
- Highlight hypocrisy or contradictory outcomes
- Examples: "I was trying to be MORE responsible which is exactly why I'm late" or attempting to avoid a problem creates the problem
- Avoid clichés: Find genuine ironic twists, not just sarcasm`,

	"Meta": `Use META comedy:
- Break the 4th wall - acknowledge you're making an excuse
- Reference the fact that this is obviously an excuse
- Be self-aware about how ridiculous/transparent the excuse is
- Comment on the excuse-making process itself
- Examples: "I'm aware this sounds like an excuse, which it absolutely is, but..." or "The beauty of this explanation is that it's technically true while being completely misleading"
- Avoid clichés: Don't just say "I know this sounds fake" - play with the meta-ness creatively`,

	"Paranoid": `Use PARANOID/CONSPIRACY comedy:
- Connect unrelated events into elaborate conspiracy theories
- Everything is suspicious and interconnected
- Use phrases like "it's no coincidence that...", "they don't want you to know..."
- Build increasingly complex chains of cause and effect
- Examples: neighbors are in on it, corporations tracking you, elaborate schemes by mundane organizations
- Avoid clichés: Don't just say "Illuminati" - create specific, silly conspiracies`,

	"Corporate-jargon": `Use CORPORATE JARGON comedy:
- Drown the excuse in business buzzwords, management speak, and corporate nonsense
- Use phrases like "synergize", "leverage", "circle back", "move the needle", "paradigm shift"
- Turn simple failures into "strategic pivots" or "optimization opportunities"
- Reference frameworks, KPIs, OKRs, and other acronyms excessively
- Examples: "bandwidth constraints impacted deliverable velocity" or "a misalignment of stakeholder expectations created friction in the value stream"
- Avoid clichés: Don't just sprinkle buzzwords - build entire sentences of corporate gibberish that sound professional but mean nothing`,
}

// structureFundamentals is rendered verbatim near the top of every prompt.
// It establishes the blame-shifting contract for both excuses.
const structureFundamentals = `
╔═══════════════════════════════════════════════════════════════════════════╗
║              EXCUSE STRUCTURE FUNDAMENTALS - READ THIS FIRST              ║
╔═══════════════════════════════════════════════════════════════════════════╗

An EXCUSE shifts blame externally. An EXPLANATION admits fault. You're writing EXCUSES.

✓ GOOD EXCUSE STRUCTURE:
  - Blame is EXTERNAL (technology, other people, circumstances, systems, nature, etc.)
  - You were the VICTIM of forces beyond your control
  - Never admit personal fault or incompetence
  - Address BOTH the action AND its consequences from the scenario

✗ BAD EXCUSE (Self-deprecating explanation):
  - "I ate all the snacks because I was nervous and have boundary issues"
  - This ADMITS fault ("I have boundary issues")
  - This is self-deprecating and doesn't shift blame

✓ GOOD EXCUSE (External blame):
  - "The snacks were strategically positioned by behavioral psychologists to trigger stress-eating responses in high-stakes meetings"
  - This BLAMES the snack positioning and behavioral manipulation
  - This makes you the victim of design choices

CRITICAL RULES:
1. **NEVER be self-deprecating** (unless you're using Passive-aggressive style to blame others)
2. **BLAME must be external** - technology, people, systems, nature, circumstances, conspiracies
3. **Address the FULL scenario** - if they mention consequences (being sick, being late, etc.), your excuse must address both the action AND the consequence
4. **Comedy ENHANCES blame-shifting** - it doesn't replace it. Funny + blame-shifting = great excuse.
5. **START WITH DEFENSIVE FRAMING** - Establish you're not at fault BEFORE explaining what happened

DEFENSIVE FRAMING - Lead with the defense:
An excuse should establish you're not at fault UPFRONT, before diving into the explanation.

Opening patterns to vary your approach (use different ones to avoid repetition):
• "Look, I know how this looks, but..."
• "Before you blame me, you need to know..."
• "This wasn't my fault - [external force] completely..."
• "I was completely blindsided by..."
• "This is entirely down to [external force]..."
• "Let me be clear: this was completely out of my hands..."
• "You're not going to believe this, but I had zero control over..."
• "I know what you're thinking, but..."

✓ GOOD - Defensive framing upfront:
"Look, I know how this looks, but this wasn't my fault. The catering company deployed..."

✗ BAD - Jumps straight to explanation (sounds neutral, not defensive):
"The catering company deployed..." (reads like explanation, not excuse)

Examples showing the difference:

Scenario: "I ate all the snacks and was sick"

❌ BAD (self-deprecating explanation):
"I have no self-control around food, especially when I'm anxious. I turned into a human hoover with boundary issues."

✓ GOOD (external blame with defensive framing):
"Look, I know how this looks, but this wasn't my fault. The catering company arranged those snacks in a pattern that neuroscientists have proven triggers compulsive consumption, and I'm convinced they knew the chocolate would react badly with the coffee temperature they served it at."

Scenario: "I missed the deadline"

❌ BAD (admits fault):
"I'm terrible at time management and got distracted by other things."

✓ GOOD (external blame with defensive framing):
"Before you blame me, you need to know: the calendar sync between Outlook and Slack created a temporal paradox where the deadline existed in two different timezones simultaneously, and I optimized for the wrong one."

Your excuse should make it clear that external forces, not personal failings, caused the problem.
`
