package suggest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/benjaminschreck/go-docxpatch/pkg/docxpatch/patch"
)

// DefaultMaxInputTokens is the default cap on the estimated prompt size.
const DefaultMaxInputTokens = 128000

// ErrInputTooLarge is returned when the estimated prompt size exceeds the
// configured maximum.
var ErrInputTooLarge = errors.New("input too large")

// DefaultRoleDescription tells the model what to do with the units.
const DefaultRoleDescription = `You will process a DOCX document and return a JSON structure that turns the DOCX file into a template
based on the following guidelines and examples. The DOCX will be provided as an annotated series of
paragraphs and runs.

Steps:
1. Analyze the document. Identify placeholder text and repeated _____ that should be replaced with a variable name.
2. Insert jinja2 tags around a new variable name that represents the placeholder text.
3. Mark optional paragraphs with conditional Jinja2 tags.
4. Text intended for verbatim output in the final document will remain unchanged.
5. The result will be a JSON structure that indicates which paragraphs and runs in the DOCX require modifications,
the new text of the modified run with Jinja2 inserted, and a draft question to provide a definition of the variable.

Example input, with paragraph and run numbers indicated:
[
    [0, 1, "Dear John Smith:"],
    [1, 0, "This sentence can stay as is in the output and will not be in the reply."],
    [2, 0, "[Optional: if you are a tenant, include this paragraph]"]
]

Example reply, indicating paragraph, run, the new text, and a number indicating if this changes the
current paragraph, adds one before, or adds one after (-1, 0, 1):

{
    "results": [
        [0, 1, "Dear {{ other_parties[0] }}:", 0],
        [2, 0, "{%p if is_tenant %}", -1],
        [2, 0, "{%p endif %}", 1]
    ]
}

The reply ONLY contains the runs that have modified text.`

var builtinPeople = []string{
	"users (for the person benefiting from the form, especially when for a pro se filer)",
	"other_parties (the opposing party in a lawsuit or transactional party)",
	"plaintiffs",
	"defendants",
	"petitioners",
	"respondents",
	"children",
	"spouses",
	"parents",
	"caregivers",
	"attorneys",
	"translators",
	"debt_collectors",
	"creditors",
	"witnesses",
	"guardians_ad_litem",
	"guardians",
	"decedents",
	"interested_parties",
}

const namingRules = `Name Forms:
    users (full name of all users)
    users[0] (full name of first user)
    users[0].name.full() (Alternate full name of first user)
    users[0].name.first (First name only)
    users[0].name.middle (Middle name only)
    users[0].name.middle_initial() (First letter of middle name)
    users[0].name.last (Last name only)
    users[0].name.suffix (Suffix of user's name only)

Attribute names (replace ` + "`users`" + ` with the appropriate list name):
    Demographic Data:
        users[0].birthdate (Birthdate)
        users[0].age_in_years() (Calculated age based on birthdate)
        users[0].gender (Gender)
        users[0].gender_female (User is female, for checkbox field)
        users[0].gender_male (User is male, for checkbox field)
        users[0].gender_other (User is not male or female, for checkbox field)
        users[0].gender_nonbinary (User identifies as nonbinary, for checkbox field)
        users[0].gender_undisclosed (User chose not to disclose gender, for checkbox field)
        users[0].gender_self_described (User chose to self-describe gender, for checkbox field)
        user_needs_interpreter (User needs an interpreter, for checkbox field)
        user_preferred_language (User's preferred language)

    Addresses:
        users[0].address.block() (Full address, on multiple lines)
        users[0].address.on_one_line() (Full address on one line)
        users[0].address.line_one() (Line one of the address, including unit or apartment number)
        users[0].address.line_two() (Line two of the address, usually city, state, and Zip/postal code)
        users[0].address.address (Street address)
        users[0].address.unit (Apartment, unit, or suite)
        users[0].address.city (City or town)
        users[0].address.state (State, province, or sub-locality)
        users[0].address.zip (Zip or postal code)
        users[0].address.county (County or parish)
        users[0].address.country (Country)

    Other Contact Information:
        users[0].phone_number (Phone number)
        users[0].mobile_number (A phone number explicitly labeled as the "mobile" number)
        users[0].phone_numbers() (A list of both mobile and other phone numbers)
        users[0].email (Email)

    Signatures:
        users[0].signature (Signature)
        signature_date (Date the form is completed)

    Information about Court and Court Processes:
        trial_court (Court's full name)
        trial_court.address.county (County where court is located)
        trial_court.division (Division of court)
        trial_court.department (Department of court)
        docket_number (Case or docket number)
        docket_numbers (A comma-separated list of docket numbers)

When No Existing Variable Name Exists:
    1. Craft short, readable variable names in python snake_case.
    2. Represent people with lists, even if only one person.
    3. Use valid Python variable names within complete Jinja2 tags, like: {{ new_variable_name }}.

    Special endings:
        Suffix _date for date values.
        Suffix _value or _amount for currency values.

    Examples:
    "(State the reason for eviction)" transforms into ` + "`{{ eviction_reason }}`" + `.`

// Prompt is the pair of chat messages sent to the model.
type Prompt struct {
	System string
	User   string
}

// Tokens returns the estimated size of the prompt in tokens.
func (p Prompt) Tokens() int {
	return EstimateTokens(p.System) + EstimateTokens(p.User)
}

// BuildPrompt assembles the system message from the role description,
// the naming rules and the people lists, and the user message from the
// units encoded as a JSON array of [paragraph, run, text] triples.
func BuildPrompt(units []patch.Unit, opts Options) (Prompt, error) {
	var system strings.Builder

	role := DefaultRoleDescription
	if strings.TrimSpace(opts.CustomPrompt) != "" {
		role = opts.CustomPrompt
	}
	system.WriteString(role)
	if extra := strings.TrimSpace(opts.AdditionalInstructions); extra != "" {
		system.WriteString("\n\nAdditional instructions:\n")
		system.WriteString(extra)
	}

	system.WriteString("\n\nRules for variable names:\n")
	system.WriteString("    1. Variables usually refer to people or their attributes.\n")
	system.WriteString("    2. People are stored in lists.\n")
	system.WriteString("    3. We use Docassemble objects and conventions.\n")
	system.WriteString("    4. Use variable names and patterns from the list below. Invent new variable names when it is appropriate.\n")
	system.WriteString("\nList names for people:\n")
	for _, p := range opts.People {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return Prompt{}, fmt.Errorf("people list entry without a name: %+v", p)
		}
		fmt.Fprintf(&system, "    %s (%s)\n", name, strings.TrimSpace(p.Description))
	}
	for _, p := range builtinPeople {
		system.WriteString("    ")
		system.WriteString(p)
		system.WriteByte('\n')
	}
	system.WriteByte('\n')
	system.WriteString(namingRules)

	if units == nil {
		units = []patch.Unit{}
	}
	user, err := json.Marshal(units)
	if err != nil {
		return Prompt{}, fmt.Errorf("encoding units: %w", err)
	}

	return Prompt{System: system.String(), User: string(user)}, nil
}

// CheckSize returns an error wrapping ErrInputTooLarge when the prompt
// is estimated to exceed the limit in opts.
func CheckSize(p Prompt, opts Options) error {
	tokens, limit := p.Tokens(), opts.maxInputTokens()
	if tokens > limit {
		return fmt.Errorf("%w: about %d tokens, maximum is %d", ErrInputTooLarge, tokens, limit)
	}
	return nil
}

// EstimateTokens approximates the number of model tokens in s at four
// characters per token.
func EstimateTokens(s string) int {
	return (utf8.RuneCountInString(s) + 3) / 4
}
