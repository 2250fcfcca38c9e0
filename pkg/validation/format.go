package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-planner/pkg/constants"
)

// SupportedOutputFormats lists the accepted output formats.
var SupportedOutputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatYAML,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, f := range SupportedOutputFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s",
		strings.Join(SupportedOutputFormats, ", "), format)
}
