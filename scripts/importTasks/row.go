package main

import (
	"fmt"
	"strconv"
	"strings"

	"coursebuilder/models/course"
	"coursebuilder/services"
)

// parseRow maps one CSV record onto an InsertTask request. Rules about the
// task itself are left to the service; only malformed numbers are rejected here.
func parseRow(row []string, headerIndex map[string]int) (services.NewTask, error) {
	courseID, err := parseUint(getField(row, headerIndex, "courseId"))
	if err != nil {
		return services.NewTask{}, fmt.Errorf("courseId: %w", err)
	}
	order, err := strconv.Atoi(getField(row, headerIndex, "order"))
	if err != nil {
		return services.NewTask{}, fmt.Errorf("order: %w", err)
	}

	return services.NewTask{
		CourseID:  courseID,
		Order:     order,
		Type:      course.TaskType(strings.ToUpper(getField(row, headerIndex, "type"))),
		Statement: getField(row, headerIndex, "statement"),
		Options:   parseOptions(getField(row, headerIndex, "options")),
	}, nil
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func parseUint(s string) (uint, error) {
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(val), nil
}

// parseOptions splits "*Golang|Python" into options; a leading "*" marks a correct one.
func parseOptions(s string) []services.OptionInput {
	if s == "" {
		return nil
	}
	var options []services.OptionInput
	for _, raw := range strings.Split(s, "|") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		options = append(options, services.OptionInput{
			Text:      strings.TrimSpace(strings.TrimPrefix(text, "*")),
			IsCorrect: strings.HasPrefix(text, "*"),
		})
	}
	return options
}
