package vocab

import "slices"

// Enum maps attribute spellings onto stored values.
type Enum[V comparable] []EnumValue[V]

// EnumValue is one attribute spelling and its stored form.
type EnumValue[V comparable] struct {
	Name  string
	Value V
}

var (
	// Isolation is IIsWebApplication.Isolation.
	Isolation = Enum[int]{{"low", 0}, {"high", 1}, {"medium", 2}}

	// Identity is the identity bit of IIsAppPool.Attributes.
	Identity = Enum[int]{
		{"networkService", 0x1},
		{"localService", 0x2},
		{"localSystem", 0x4},
		{"other", 0x8},
		{"applicationPoolIdentity", 0x10},
	}

	// CPUAction is the action part of IIsAppPool.CPUMon.
	CPUAction = Enum[int]{{"none", 0}, {"shutdown", 1}}

	// StoreLocation is Certificate.StoreLocation.
	StoreLocation = Enum[int]{{"currentUser", 1}, {"localMachine", 2}}

	// StoreName is Certificate.StoreName; the stored form is the Windows store name.
	StoreName = Enum[string]{
		{"ca", "CA"},
		{"my", "MY"},
		{"request", "REQUEST"},
		{"root", "Root"},
		{"otherPeople", "AddressBook"},
		{"trustedPeople", "TrustedPeople"},
		{"trustedPublisher", "TrustedPublisher"},
	}

	// LogFormat is IIsWebLog.Format.
	LogFormat = Enum[string]{
		{"IIS", "Microsoft IIS Log File Format"},
		{"NCSA", "NCSA Common Log File Format"},
		{"none", "none"},
		{"ODBC", "ODBC Logging"},
	}
)

// Value returns the stored form of name.
func (e Enum[V]) Value(name string) (V, bool) {
	i := slices.IndexFunc(e, func(ev EnumValue[V]) bool { return ev.Name == name })
	if i < 0 {
		var zero V
		return zero, false
	}

	return e[i].Value, true
}

// Name returns the attribute spelling of a stored value.
func (e Enum[V]) Name(value V) (string, bool) {
	i := slices.IndexFunc(e, func(ev EnumValue[V]) bool { return ev.Value == value })
	if i < 0 {
		return "", false
	}

	return e[i].Name, true
}

// Names returns every spelling in declaration order.
func (e Enum[V]) Names() []string {
	names := make([]string, len(e))
	for i, ev := range e {
		names[i] = ev.Name
	}

	return names
}
