// Copyright 2023 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package tpm2lite

import (
	"fmt"

	"golang.org/x/xerrors"
)

// MarshalError is returned from MarshalCommand if a command cannot be
// serialized, either because the command code is unsupported, the parameters
// have the wrong type, or the destination buffer is too small.
type MarshalError struct {
	Command CommandCode
	err     error
}

func (e *MarshalError) Error() string {
	return fmt.Sprintf("cannot marshal command %s: %v", e.Command, e.err)
}

func (e *MarshalError) Unwrap() error {
	return e.err
}

// InvalidResponseError is returned from UnmarshalResponse if the TPM's
// response is invalid. An invalid response could be one that is shorter than
// the response header, one for a command that this package has no
// unmarshaller for, a payload that is shorter than its size fields indicate,
// or a payload with trailing bytes that no field accounts for.
//
// The command code is the one the caller supplied, as the wire format does
// not identify the command a response belongs to.
type InvalidResponseError struct {
	Command CommandCode
	msg     string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("TPM returned an invalid response for command %s: %s", e.Command, e.msg)
}

// TransportError is returned from any Context method if the underlying
// transport returns an error.
type TransportError struct {
	Op  string // The operation that caused the error
	err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot complete %s operation on transport: %v", e.Op, e.err)
}

func (e *TransportError) Unwrap() error {
	return e.err
}

// TPMError is returned from DecodeResponseCode and any Context method that
// executes a command on the TPM if the response code indicates an error.
type TPMError struct {
	Command CommandCode  // Command code associated with this error
	Code    ResponseCode // Response code
}

func (e *TPMError) Error() string {
	return fmt.Sprintf("TPM returned an error whilst executing command %s: %#08x", e.Command, uint32(e.Code))
}

// TPMWarning is returned from DecodeResponseCode and any Context method that
// executes a command on the TPM if the response code indicates a condition
// that is not necessarily an error, such as the TPM being busy.
type TPMWarning struct {
	Command CommandCode  // Command code associated with this warning
	Code    ResponseCode // Response code
}

func (e *TPMWarning) Error() string {
	return fmt.Sprintf("TPM returned a warning whilst executing command %s: %#08x", e.Command, uint32(e.Code))
}

// IsTPMError indicates whether the error or any error within its chain is a
// *TPMError associated with the specified command code.
func IsTPMError(err error, command CommandCode) bool {
	var e *TPMError
	return xerrors.As(err, &e) && e.Command == command
}

// IsTPMWarning indicates whether the error or any error within its chain is
// a *TPMWarning associated with the specified command code.
func IsTPMWarning(err error, command CommandCode) bool {
	var e *TPMWarning
	return xerrors.As(err, &e) && e.Command == command
}

const (
	formatMask ResponseCode = 1 << 7 // Bit 7 selects between format-zero and format-one codes

	fmt0SeverityMask ResponseCode = 1 << 11 // Bit 11 of format-zero codes is set for warnings
)

// DecodeResponseCode decodes the ResponseCode provided via resp. If the
// specified response code is ResponseSuccess, it returns no error, else it
// returns an error that is appropriate for the response code. The command
// code is used for adding context to the returned error.
func DecodeResponseCode(command CommandCode, resp ResponseCode) error {
	switch {
	case resp == ResponseSuccess:
		return nil
	case resp&formatMask == 0 && resp&fmt0SeverityMask > 0:
		return &TPMWarning{command, resp}
	default:
		return &TPMError{command, resp}
	}
}
