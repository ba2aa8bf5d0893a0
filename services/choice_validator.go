package services

import (
	"fmt"
	"strings"

	"coursebuilder/models/course"

	"golang.org/x/text/cases"
)

// OptionInput is one alternative submitted with a choice task.
type OptionInput struct {
	Text      string
	IsCorrect bool
}

type choiceRule struct {
	minOptions   int
	maxOptions   int
	minCorrect   int
	maxCorrect   int
	minIncorrect int

	correctMessage string
}

var choiceRules = map[course.TaskType]choiceRule{
	course.TypeSingleChoice: {
		minOptions:     2,
		maxOptions:     5,
		minCorrect:     1,
		maxCorrect:     1,
		correctMessage: "Single choice tasks must have exactly one correct option",
	},
	course.TypeMultipleChoice: {
		minOptions:     3,
		maxOptions:     5,
		minCorrect:     2,
		maxCorrect:     5,
		minIncorrect:   1,
		correctMessage: "Multiple choice tasks must have at least two correct options",
	},
}

// ValidateOptions checks the option set of a choice task. It has no side
// effects; OPEN_TEXT tasks always pass.
func ValidateOptions(statement string, taskType course.TaskType, options []OptionInput) error {
	rule, ok := choiceRules[taskType]
	if !ok {
		return nil
	}

	if len(options) < rule.minOptions || len(options) > rule.maxOptions {
		return invalidOptionSet(ReasonCountOutOfRange,
			fmt.Sprintf("%s tasks must have between %d and %d options, got %d",
				taskType, rule.minOptions, rule.maxOptions, len(options)))
	}

	correct, err := inspectOptions(statement, options)
	if err != nil {
		return err
	}
	incorrect := len(options) - correct

	if correct < rule.minCorrect || correct > rule.maxCorrect {
		return invalidOptionSet(ReasonWrongCorrectCount, rule.correctMessage)
	}
	if incorrect < rule.minIncorrect {
		return invalidOptionSet(ReasonNoIncorrectOption,
			"Multiple choice tasks must have at least one incorrect option")
	}
	return nil
}

// inspectOptions applies the rules shared by every choice type and returns the
// number of correct options.
func inspectOptions(statement string, options []OptionInput) (int, error) {
	fold := cases.Fold()
	seen := make(map[string]struct{}, len(options))
	correct := 0

	for _, option := range options {
		text := strings.TrimSpace(option.Text)

		if text == statement {
			return 0, &ValidationError{
				Kind:    KindOptionEqualsStatement,
				Field:   "option",
				Message: fmt.Sprintf("Option %q cannot be the same as the task statement", text),
			}
		}

		key := fold.String(text)
		if _, dup := seen[key]; dup {
			return 0, &ValidationError{
				Kind:    KindDuplicateOptionText,
				Field:   "options",
				Message: fmt.Sprintf("Options must have distinct titles, %q is repeated", text),
			}
		}
		seen[key] = struct{}{}

		if option.IsCorrect {
			correct++
		}
	}
	return correct, nil
}

func invalidOptionSet(reason OptionSetReason, message string) error {
	return &ValidationError{
		Kind:    KindInvalidOptionSet,
		Field:   "options",
		Message: message,
		Reason:  reason,
	}
}
