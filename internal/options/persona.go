package options

// Persona is the biography block substituted into the blame-persona focus.
// Colleagues keep adding details over time; the AI mixes them with generic
// CEO stereotypes so excuses stay varied.
const Persona = `
ROBIN SKIDMORE - CEO & Founder of Journey Further

Random bits of information about Robin:
- CEO and a founder of Journey Further
- He is high energy, passionate and enthusiastic
- He is an Essex lad
- He used to work in the sales team and fancies himself to be a brilliant salesman and brilliant in pitches
- He is a bit of a neat freak
- He loves his Peloton
- There is a running joke that he gets his hair cut so very regularly, unusually regularly
- He has invested in varied other ventures before (with mixed results)

[More details to be added by colleagues over time]
`
