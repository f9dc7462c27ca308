// Package vocab holds the value encodings shared by the compiler and the
// decompiler: packed bit flags, integer and string enumerations, and the
// few composite column formats.
package vocab

// Flag is one yes/no attribute packed into a bit of an integer column.
type Flag struct {
	Attribute string
	Bit       int
}

// FlagSet is the list of attributes packed into one column.
type FlagSet []Flag

var (
	// AccessFlags pack into IIsWebDirProperties.Access.
	AccessFlags = FlagSet{
		{"Read", 0x1},
		{"Write", 0x2},
		{"Execute", 0x4},
		{"Source", 0x10},
		{"Script", 0x200},
	}

	// AuthorizationFlags pack into IIsWebDirProperties.Authorization.
	AuthorizationFlags = FlagSet{
		{"AnonymousAccess", 0x1},
		{"BasicAuthentication", 0x2},
		{"WindowsAuthentication", 0x4},
		{"DigestAuthentication", 0x10},
		{"PassportAuthentication", 0x40},
	}

	// AccessSSLFlags pack into IIsWebDirProperties.AccessSSLFlags.
	AccessSSLFlags = FlagSet{
		{"AccessSSL", 0x8},
		{"AccessSSLNegotiateCert", 0x20},
		{"AccessSSLRequireCert", 0x40},
		{"AccessSSLMapCert", 0x80},
		{"AccessSSL128", 0x100},
	}

	// ExtensionFlags pack into IIsWebApplicationExtension.Attributes.
	ExtensionFlags = FlagSet{
		{"Script", 0x1},
		{"CheckPath", 0x4},
	}

	// SiteStateFlags pack into IIsWebSite.State.
	SiteStateFlags = FlagSet{
		{"StartOnInstall", 0x1},
		{"AutoStart", 0x2},
	}

	// ServiceExtensionFlags pack into IIsWebServiceExtension.Attributes.
	ServiceExtensionFlags = FlagSet{
		{"Allow", 0x1},
		{"UIDeletable", 0x2},
	}

	// CertificateFlags pack into Certificate.Attributes. CertificateBinaryKey
	// is derived from Binary_ and has no attribute of its own.
	CertificateFlags = FlagSet{
		{"Request", 0x1},
		{"Overwrite", 0x4},
	}
)

const CertificateBinaryKey = 0x2

// Pack ORs the bits of every attribute lookup reports as yes. It returns nil
// when none of the attributes is present at all.
func (fs FlagSet) Pack(lookup func(attribute string) *bool) *int {
	present := false
	bits := 0

	for _, f := range fs {
		v := lookup(f.Attribute)
		if v == nil {
			continue
		}

		present = true

		if *v {
			bits |= f.Bit
		}
	}

	if !present {
		return nil
	}

	return &bits
}

// Mask returns the OR of every known bit.
func (fs FlagSet) Mask() int {
	m := 0
	for _, f := range fs {
		m |= f.Bit
	}

	return m
}

// Unpack tests each bit independently and returns the attributes that are
// set, in declaration order, plus any bits no attribute accounts for.
func (fs FlagSet) Unpack(value int) (set []string, unknown int) {
	for _, f := range fs {
		if value&f.Bit != 0 {
			set = append(set, f.Attribute)
		}
	}

	return set, value &^ fs.Mask()
}
