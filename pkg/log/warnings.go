package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/mofsieve/pkg/errors"
)

// RegisterWarningSink routes pkg/errors warnings into a zerolog logger
// writing to w. Warnings that implement zerolog.LogObjectMarshaler (such as
// DegenerateColumnWarning and SingularMatrixWarning) are emitted as
// structured objects.
func RegisterWarningSink(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).With().Timestamp().Logger()

	errors.SetZerologWarnFunc(func(warning error) {
		ev := zl.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(obj)
		}
		ev.Msg(warning.Error())
	})
}
