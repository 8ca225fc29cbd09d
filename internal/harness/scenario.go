package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a heap scenario: a sequence of operations against a
// deterministic oracle and the assertions the outcome must satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// MinCapacity overrides the heap's minimum capacity when positive.
	MinCapacity int `yaml:"min_capacity,omitempty"`

	// Oracle configures how questions are answered.
	Oracle OracleSpec `yaml:"oracle"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the heap after the last step.
	// Supported types: queries, peek, count, capacity, drain_order, never_asked
	Assertions []Assertion `yaml:"assertions"`
}

// OracleSpec selects the scenario's oracle. Exactly one of Ranking and
// Answers may be set; with neither, every question fails.
type OracleSpec struct {
	// Ranking lists item names from highest to lowest priority.
	Ranking []string `yaml:"ranking,omitempty"`

	// Answers lists the winner of each question in the order asked.
	Answers []string `yaml:"answers,omitempty"`
}

// Step is one heap operation. Exactly one of Add, Delete, Peek and Reload
// must be set.
type Step struct {
	// Add inserts an item with this name.
	Add string `yaml:"add,omitempty"`

	// Delete removes the top item.
	Delete bool `yaml:"delete,omitempty"`

	// Peek checks the top item. An empty string expects an empty heap.
	Peek *string `yaml:"peek,omitempty"`

	// Reload saves the heap to the store and restores it from there.
	Reload bool `yaml:"reload,omitempty"`

	// ExpectError is the error code the step must fail with.
	// One of oracle_contract, oracle_failed, invariant_violation.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Kind returns the step's operation as a trace event type.
func (s Step) Kind() string {
	switch {
	case s.Add != "":
		return EventAdd
	case s.Delete:
		return EventDelete
	case s.Peek != nil:
		return EventPeek
	case s.Reload:
		return EventReload
	}
	return ""
}

// Assertion validates the final heap.
type Assertion struct {
	// Type specifies the assertion type:
	// - "queries": Oracle questions asked by the steps
	// - "peek": Name of the top item
	// - "count": Number of items
	// - "capacity": Size of the backing array
	// - "drain_order": Names in deletion order
	// - "never_asked": Pair of names the oracle never compared
	Type string `yaml:"type"`

	// Value is the expected number (used by queries, count, capacity).
	Value *int `yaml:"value,omitempty"`

	// Item is the expected top item (used by peek).
	Item string `yaml:"item,omitempty"`

	// Order is the expected deletion order (used by drain_order).
	Order []string `yaml:"order,omitempty"`

	// Pair holds two item names (used by never_asked).
	Pair []string `yaml:"pair,omitempty"`
}

// Assertion type constants.
const (
	AssertQueries    = "queries"
	AssertPeek       = "peek"
	AssertCount      = "count"
	AssertCapacity   = "capacity"
	AssertDrainOrder = "drain_order"
	AssertNeverAsked = "never_asked"
)

// Expected error codes for steps.
const (
	ExpectOracleContract = "oracle_contract"
	ExpectOracleFailed   = "oracle_failed"
	ExpectInvariant      = "invariant_violation"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.MinCapacity < 0 {
		return fmt.Errorf("min_capacity must be non-negative")
	}

	if len(s.Oracle.Ranking) > 0 && len(s.Oracle.Answers) > 0 {
		return fmt.Errorf("oracle: ranking and answers are mutually exclusive")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep checks that a step names exactly one operation.
func validateStep(index int, step Step) error {
	ops := 0
	if step.Add != "" {
		ops++
	}
	if step.Delete {
		ops++
	}
	if step.Peek != nil {
		ops++
	}
	if step.Reload {
		ops++
	}
	if ops != 1 {
		return fmt.Errorf("steps[%d]: exactly one of add, delete, peek, reload is required", index)
	}

	switch step.ExpectError {
	case "", ExpectOracleContract, ExpectOracleFailed, ExpectInvariant:
	default:
		return fmt.Errorf("steps[%d]: unknown expect_error %q", index, step.ExpectError)
	}
	if step.ExpectError != "" && (step.Peek != nil || step.Reload) {
		return fmt.Errorf("steps[%d]: expect_error only applies to add and delete", index)
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertQueries, AssertCount, AssertCapacity:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for %s", index, a.Type)
		}
		if *a.Value < 0 {
			return fmt.Errorf("assertions[%d]: value must be non-negative for %s", index, a.Type)
		}
	case AssertPeek:
		if a.Item == "" {
			return fmt.Errorf("assertions[%d]: item is required for peek", index)
		}
	case AssertDrainOrder:
		if a.Order == nil {
			return fmt.Errorf("assertions[%d]: order is required for drain_order", index)
		}
	case AssertNeverAsked:
		if len(a.Pair) != 2 {
			return fmt.Errorf("assertions[%d]: pair must name exactly two items for never_asked", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
