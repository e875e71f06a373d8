//go:build windows

package wmi

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// SetStartMode implements ports.StartModeChanger. The call returns once WMI
// has accepted the request; it does not read the mode back.
func (c *Changer) SetStartMode(ctx context.Context, name string, mode model.StartMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// COM apartments are per OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		oleErr, ok := err.(*ole.OleError)
		// S_FALSE means already initialized, which is fine
		if !ok || oleErr.Code() != 0x00000001 {
			return fmt.Errorf("COM initialization failed: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return fmt.Errorf("failed to create WMI locator: %w", err)
	}
	defer unknown.Release()

	locator, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("failed to get IDispatch: %w", err)
	}
	defer locator.Release()

	serviceRaw, err := oleutil.CallMethod(locator, "ConnectServer", ".", Namespace)
	if err != nil {
		return remedyerrors.NewProviderError("connect "+Namespace, name, callKind(hresult(err)), err)
	}
	wbem := serviceRaw.ToIDispatch()
	defer wbem.Release()

	objectPath := fmt.Sprintf("Win32_Service.Name='%s'", escape(name))
	objRaw, err := oleutil.CallMethod(wbem, "Get", objectPath)
	if err != nil {
		return remedyerrors.NewProviderError("change start mode", name, callKind(hresult(err)), err)
	}
	obj := objRaw.ToIDispatch()
	defer obj.Release()

	resultRaw, err := oleutil.CallMethod(obj, "ChangeStartMode", string(mode))
	if err != nil {
		return remedyerrors.NewProviderError("change start mode", name, callKind(hresult(err)), err)
	}
	defer resultRaw.Clear()

	code := 0
	switch v := resultRaw.Value().(type) {
	case int32:
		code = int(v)
	case uint32:
		code = int(v)
	case int64:
		code = int(v)
	case int:
		code = v
	}
	if err := resultError(name, code); err != nil {
		return err
	}

	c.logger.Info(ctx, "start mode change requested", "service", name, "mode", string(mode))
	return nil
}

// hresult extracts the failure code of a COM call. For DISP_E_EXCEPTION the
// provider's own SCODE is carried in the exception info.
func hresult(err error) uint32 {
	var oleErr *ole.OleError
	if !errors.As(err, &oleErr) {
		return 0
	}
	if info, ok := oleErr.SubError().(interface{ SCODE() uint32 }); ok && info.SCODE() != 0 {
		return info.SCODE()
	}
	return uint32(oleErr.Code())
}
