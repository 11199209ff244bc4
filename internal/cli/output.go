package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() string }); ok {
			fmt.Println(idGetter.GetID())
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]interface{}{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": false,
			"error":   errData,
		})
	}

	if f.Quiet {
		return nil
	}

	// Human-readable error
	fmt.Fprintf(os.Stderr, "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err in the current output mode and returns it, so a command
// can end with `return formatter.Fail(err)`
func (f *OutputFormatter) Fail(err error) error {
	if err == nil {
		return nil
	}
	code := ErrorCode(err)
	if fmtErr := f.ErrorWithSuggestion(code, err.Error(), suggestions[code]); fmtErr != nil {
		return fmtErr
	}
	return &reportedError{err: err}
}

var suggestions = map[string]string{
	"BOARD_NOT_FOUND":   "Use 'lanes board list' to see available boards",
	"TASK_NOT_FOUND":    "Use 'lanes board show <board>' to see the board's tasks",
	"PERMISSION_DENIED": "Only the task's assignees can move or complete a claimed task",
	"STALE_REFERENCE":   "The task was changed or removed elsewhere; run the command again",
	"CHANGE_IN_FLIGHT":  "Wait for the pending change to finish and try again",
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data interface{}) error {
	if s, ok := data.(fmt.Stringer); ok {
		fmt.Println(s.String())
		return nil
	}
	fmt.Printf("%+v\n", data)
	return nil
}
