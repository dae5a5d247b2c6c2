// Package util provides utility functions and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for topology operation failures
var (
	ErrDuplicateDeviceID         = errors.New("duplicate device id")
	ErrDeviceNotFound            = errors.New("device not found")
	ErrInterfaceNotFound         = errors.New("interface not found")
	ErrInterfaceAlreadyConnected = errors.New("interface already connected")
	ErrConnectionMismatch        = errors.New("interfaces are not connected to each other")
	ErrTypeMismatch              = errors.New("operation not valid for device kind")
	ErrDocumentParse             = errors.New("malformed topology document")
	ErrDocumentNotFound          = errors.New("topology document not found")
)

// DuplicateDeviceError reports an add of a device id that already exists.
type DuplicateDeviceError struct {
	DeviceID string
}

func (e *DuplicateDeviceError) Error() string {
	return fmt.Sprintf("device '%s' already exists in the topology", e.DeviceID)
}

func (e *DuplicateDeviceError) Unwrap() error {
	return ErrDuplicateDeviceID
}

// NewDuplicateDeviceError creates a duplicate-device error
func NewDuplicateDeviceError(deviceID string) *DuplicateDeviceError {
	return &DuplicateDeviceError{DeviceID: deviceID}
}

// DeviceNotFoundError reports a reference to a nonexistent device.
type DeviceNotFoundError struct {
	DeviceID string
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("device '%s' does not exist in the topology", e.DeviceID)
}

func (e *DeviceNotFoundError) Unwrap() error {
	return ErrDeviceNotFound
}

// NewDeviceNotFoundError creates a device-not-found error
func NewDeviceNotFoundError(deviceID string) *DeviceNotFoundError {
	return &DeviceNotFoundError{DeviceID: deviceID}
}

// InterfaceNotFoundError reports a reference to a nonexistent interface on a device.
type InterfaceNotFoundError struct {
	DeviceID  string
	Interface string
}

func (e *InterfaceNotFoundError) Error() string {
	return fmt.Sprintf("interface '%s' does not exist on device '%s'", e.Interface, e.DeviceID)
}

func (e *InterfaceNotFoundError) Unwrap() error {
	return ErrInterfaceNotFound
}

// NewInterfaceNotFoundError creates an interface-not-found error
func NewInterfaceNotFoundError(deviceID, iface string) *InterfaceNotFoundError {
	return &InterfaceNotFoundError{DeviceID: deviceID, Interface: iface}
}

// AlreadyConnectedError reports a connect attempt on an occupied interface slot.
type AlreadyConnectedError struct {
	DeviceID  string
	Interface string
}

func (e *AlreadyConnectedError) Error() string {
	return fmt.Sprintf("interface '%s' on device '%s' is already connected", e.Interface, e.DeviceID)
}

func (e *AlreadyConnectedError) Unwrap() error {
	return ErrInterfaceAlreadyConnected
}

// NewAlreadyConnectedError creates an already-connected error
func NewAlreadyConnectedError(deviceID, iface string) *AlreadyConnectedError {
	return &AlreadyConnectedError{DeviceID: deviceID, Interface: iface}
}

// ConnectionMismatchError reports a disconnect whose endpoints do not
// reciprocally reference each other.
type ConnectionMismatchError struct {
	Device1    string
	Interface1 string
	Device2    string
	Interface2 string
}

func (e *ConnectionMismatchError) Error() string {
	return fmt.Sprintf("'%s:%s' and '%s:%s' are not connected to each other",
		e.Device1, e.Interface1, e.Device2, e.Interface2)
}

func (e *ConnectionMismatchError) Unwrap() error {
	return ErrConnectionMismatch
}

// NewConnectionMismatchError creates a connection-mismatch error
func NewConnectionMismatchError(d1, i1, d2, i2 string) *ConnectionMismatchError {
	return &ConnectionMismatchError{Device1: d1, Interface1: i1, Device2: d2, Interface2: i2}
}

// KindMismatchError reports a kind-specific operation invoked on the wrong
// device kind (e.g. VLAN configuration on a host).
type KindMismatchError struct {
	DeviceID string
	Want     string
	Got      string
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("device '%s' is a %s, operation requires a %s", e.DeviceID, e.Got, e.Want)
}

func (e *KindMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// NewKindMismatchError creates a kind-mismatch error
func NewKindMismatchError(deviceID, want, got string) *KindMismatchError {
	return &KindMismatchError{DeviceID: deviceID, Want: want, Got: got}
}

// DocumentError reports a serialized document that could not be read or parsed.
type DocumentError struct {
	Path   string
	Detail string
	Err    error // ErrDocumentParse or ErrDocumentNotFound
}

func (e *DocumentError) Error() string {
	msg := e.Err.Error()
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewDocumentParseError creates a document error wrapping ErrDocumentParse
func NewDocumentParseError(path, detail string) *DocumentError {
	return &DocumentError{Path: path, Detail: detail, Err: ErrDocumentParse}
}

// NewDocumentNotFoundError creates a document error wrapping ErrDocumentNotFound
func NewDocumentNotFoundError(path string) *DocumentError {
	return &DocumentError{Path: path, Err: ErrDocumentNotFound}
}

// ValidationBuilder helps accumulate document validation errors
type ValidationBuilder struct {
	errors []string
}

// AddError adds an error message unconditionally
func (v *ValidationBuilder) AddError(message string) *ValidationBuilder {
	v.errors = append(v.errors, message)
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns a DocumentError summarizing all messages, or nil if none.
func (v *ValidationBuilder) Build(path string) error {
	if len(v.errors) == 0 {
		return nil
	}
	return &DocumentError{
		Path:   path,
		Detail: strings.Join(v.errors, "; "),
		Err:    ErrDocumentParse,
	}
}
