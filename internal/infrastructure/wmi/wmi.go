// Package wmi implements ports.StartModeChanger through the WMI
// Win32_Service.ChangeStartMode method, the elevated management channel.
//
// This package uses the go-ole library to drive WMI over COM on Windows.
// On other platforms every call reports ErrUnsupported.
package wmi

import (
	"fmt"

	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// Namespace is the WMI namespace hosting Win32_Service.
const Namespace = `root\CIMV2`

// Changer is the host start-mode provider.
type Changer struct {
	logger ports.Logger
}

// New returns a Changer. A nil logger discards output.
func New(logger ports.Logger) *Changer {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Changer{logger: logger.With("component", "wmi")}
}

// returnCodes are the documented Win32_Service method results we surface by
// name.
var returnCodes = map[int]string{
	1:  "not supported",
	2:  "access denied",
	3:  "dependent services running",
	4:  "invalid service control",
	5:  "service cannot accept control",
	6:  "service not active",
	7:  "service request timeout",
	8:  "unknown failure",
	9:  "path not found",
	10: "service already running",
	11: "service database locked",
	14: "service disabled",
	15: "service logon failed",
	21: "invalid parameter",
	22: "invalid service account",
	24: "service exists",
}

// resultError converts a ChangeStartMode return value into an error. Zero
// means the request was accepted.
func resultError(name string, code int) error {
	if code == 0 {
		return nil
	}
	text, ok := returnCodes[code]
	if !ok {
		text = "unrecognised result"
	}
	var kind error
	switch code {
	case 2:
		kind = remedyerrors.ErrPermissionDenied
	case 9:
		kind = remedyerrors.ErrNotFound
	}
	return remedyerrors.NewProviderError("change start mode", name, kind, fmt.Errorf("wmi returned %d (%s)", code, text))
}

// COM and WBEM failure codes that map onto sentinel kinds.
const (
	wbemNotFound     uint32 = 0x80041002
	wbemAccessDenied uint32 = 0x80041003
	comAccessDenied  uint32 = 0x80070005
)

// callKind classifies the HRESULT of a failed WMI call.
func callKind(code uint32) error {
	switch code {
	case wbemNotFound:
		return remedyerrors.ErrNotFound
	case wbemAccessDenied, comAccessDenied:
		return remedyerrors.ErrPermissionDenied
	default:
		return nil
	}
}

// escape quotes a value for use inside a WMI object path.
func escape(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == '\\' || r == '\'' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

var _ ports.StartModeChanger = (*Changer)(nil)
