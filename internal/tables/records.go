package tables

// Table names.
const (
	TableDirectory               = "Directory"
	TableComponent               = "Component"
	TableBinary                  = "Binary"
	TableUser                    = "User"
	TableWebLog                  = "IIsWebLog"
	TableWebDirProperties        = "IIsWebDirProperties"
	TableAppPool                 = "IIsAppPool"
	TableWebApplication          = "IIsWebApplication"
	TableWebApplicationExtension = "IIsWebApplicationExtension"
	TableWebSite                 = "IIsWebSite"
	TableWebAddress              = "IIsWebAddress"
	TableWebVirtualDir           = "IIsWebVirtualDir"
	TableWebDir                  = "IIsWebDir"
	TableFilter                  = "IIsFilter"
	TableMimeMap                 = "IIsMimeMap"
	TableHttpHeader              = "IIsHttpHeader"
	TableWebError                = "IIsWebError"
	TableWebServiceExtension     = "IIsWebServiceExtension"
	TableCertificate             = "Certificate"
	TableWebSiteCertificates     = "IIsWebSiteCertificates"
	TableProperty                = "IIsProperty"
)

// Record is a typed row. Its struct tags define the table layout.
type Record interface {
	TableName() string
}

// Directory is a target directory. A nil or self-referencing parent makes it a root.
type Directory struct {
	Directory       string  `msi:"Directory,key"`
	DirectoryParent *string `msi:"Directory_Parent,ref=Directory"`
	DefaultDir      *string `msi:"DefaultDir"`
}

// Component is an install unit owning the rows that name it.
type Component struct {
	Component string  `msi:"Component,key"`
	Directory *string `msi:"Directory_,ref=Directory"`
}

// Binary is an embedded blob, such as a certificate's contents.
type Binary struct {
	Name string  `msi:"Name,key"`
	Data *string `msi:"Data"`
}

// User is an account referenced by pools and anonymous access.
type User struct {
	User      string  `msi:"User,key"`
	Component *string `msi:"Component_,ref=Component"`
	Name      *string `msi:"Name"`
	Domain    *string `msi:"Domain"`
	Password  *string `msi:"Password"`
}

// WebLog is a named log format shared by sites.
type WebLog struct {
	Log    string  `msi:"Log,key"`
	Format *string `msi:"Format"`
}

// WebDirProperties holds directory access settings. Access, Authorization
// and AccessSSLFlags are packed flag sets.
type WebDirProperties struct {
	DirProperties           string  `msi:"DirProperties,key"`
	Access                  *int    `msi:"Access"`
	Authorization           *int    `msi:"Authorization"`
	AnonymousUser           *string `msi:"AnonymousUser_,ref=User"`
	IIsControlledPassword   *int    `msi:"IIsControlledPassword"`
	LogVisits               *int    `msi:"LogVisits"`
	Index                   *int    `msi:"Index"`
	DefaultDoc              *string `msi:"DefaultDoc"`
	AspDetailedError        *int    `msi:"AspDetailedError"`
	HttpExpires             *string `msi:"HttpExpires"`
	CacheControlMaxAge      *int    `msi:"CacheControlMaxAge"`
	CacheControlCustom      *string `msi:"CacheControlCustom"`
	NoCustomError           *int    `msi:"NoCustomError"`
	AccessSSLFlags          *int    `msi:"AccessSSLFlags"`
	AuthenticationProviders *string `msi:"AuthenticationProviders"`
}

// AppPool is an application pool.
type AppPool struct {
	AppPool               string  `msi:"AppPool,key"`
	Name                  *string `msi:"Name"`
	Component             *string `msi:"Component_,ref=Component"`
	Attributes            *int    `msi:"Attributes"`
	User                  *string `msi:"User_,ref=User"`
	RecycleMinutes        *int    `msi:"RecycleMinutes"`
	RecycleRequests       *int    `msi:"RecycleRequests"`
	RecycleTimes          *string `msi:"RecycleTimes"`
	IdleTimeout           *int    `msi:"IdleTimeout"`
	QueueLimit            *int    `msi:"QueueLimit"`
	CPUMon                *string `msi:"CPUMon"`
	MaxProc               *int    `msi:"MaxProc"`
	VirtualMemory         *int    `msi:"VirtualMemory"`
	PrivateMemory         *int    `msi:"PrivateMemory"`
	ManagedRuntimeVersion *string `msi:"ManagedRuntimeVersion"`
	ManagedPipelineMode   *string `msi:"ManagedPipelineMode"`
}

// WebApplication holds the application settings of a site or directory.
type WebApplication struct {
	Application     string  `msi:"Application,key"`
	Name            *string `msi:"Name"`
	Isolation       *int    `msi:"Isolation"`
	AllowSessions   *int    `msi:"AllowSessions"`
	SessionTimeout  *int    `msi:"SessionTimeout"`
	Buffer          *int    `msi:"Buffer"`
	ParentPaths     *int    `msi:"ParentPaths"`
	DefaultScript   *string `msi:"DefaultScript"`
	ScriptTimeout   *int    `msi:"ScriptTimeout"`
	ServerDebugging *int    `msi:"ServerDebugging"`
	ClientDebugging *int    `msi:"ClientDebugging"`
	AppPool         *string `msi:"AppPool_,ref=IIsAppPool"`
}

// WebApplicationExtension is keyed by application and extension. An empty
// extension maps every extension.
type WebApplicationExtension struct {
	Application string  `msi:"Application_,key,ref=IIsWebApplication"`
	Extension   string  `msi:"Extension,key"`
	Verbs       *string `msi:"Verbs"`
	Executable  *string `msi:"Executable"`
	Attributes  *int    `msi:"Attributes"`
}

// WebSite is a web site. A nil Component marks a locator for an existing site.
type WebSite struct {
	Web               string  `msi:"Web,key"`
	Component         *string `msi:"Component_,ref=Component"`
	Description       *string `msi:"Description"`
	ConnectionTimeout *int    `msi:"ConnectionTimeout"`
	Directory         *string `msi:"Directory_,ref=Directory"`
	State             *int    `msi:"State"`
	Attributes        *int    `msi:"Attributes"`
	KeyAddress        *string `msi:"KeyAddress_,ref=IIsWebAddress"`
	DirProperties     *string `msi:"DirProperties_,ref=IIsWebDirProperties"`
	Application       *string `msi:"Application_,ref=IIsWebApplication"`
	Sequence          *int    `msi:"Sequence"`
	Log               *string `msi:"Log_,ref=IIsWebLog"`
	WebsiteID         *string `msi:"WebsiteId"`
}

// WebAddress is one binding of a site.
type WebAddress struct {
	Address string  `msi:"Address,key"`
	Web     string  `msi:"Web_,ref=IIsWebSite"`
	IP      *string `msi:"IP"`
	Port    *string `msi:"Port"`
	Header  *string `msi:"Header"`
	Secure  *int    `msi:"Secure"`
}

// WebVirtualDir is a virtual directory mapping an alias onto a directory.
type WebVirtualDir struct {
	VirtualDir    string  `msi:"VirtualDir,key"`
	Component     *string `msi:"Component_,ref=Component"`
	Web           *string `msi:"Web_,ref=IIsWebSite"`
	Alias         *string `msi:"Alias"`
	Directory     *string `msi:"Directory_,ref=Directory"`
	DirProperties *string `msi:"DirProperties_,ref=IIsWebDirProperties"`
	Application   *string `msi:"Application_,ref=IIsWebApplication"`
}

// WebDir configures a physical directory below a site.
type WebDir struct {
	WebDir        string  `msi:"WebDir,key"`
	Component     *string `msi:"Component_,ref=Component"`
	Web           *string `msi:"Web_,ref=IIsWebSite"`
	Path          *string `msi:"Path"`
	DirProperties *string `msi:"DirProperties_,ref=IIsWebDirProperties"`
	Application   *string `msi:"Application_,ref=IIsWebApplication"`
}

// Filter is an ISAPI filter. LoadOrder is 0 for first, -1 for last.
type Filter struct {
	Filter      string  `msi:"Filter,key"`
	Name        *string `msi:"Name"`
	Component   *string `msi:"Component_,ref=Component"`
	Path        *string `msi:"Path"`
	Web         *string `msi:"Web_,ref=IIsWebSite"`
	Description *string `msi:"Description"`
	Flags       *int    `msi:"Flags"`
	LoadOrder   *int    `msi:"LoadOrder"`
}

// MimeMap maps an extension onto a MIME type for a site or virtual directory.
type MimeMap struct {
	MimeMap   string    `msi:"MimeMap,key"`
	Parent    ParentRef `msi:"ParentType+ParentValue"`
	MimeType  *string   `msi:"MimeType"`
	Extension *string   `msi:"Extension"`
}

// HttpHeader is a custom response header.
type HttpHeader struct {
	HttpHeader string    `msi:"HttpHeader,key"`
	Parent     ParentRef `msi:"ParentType+ParentValue"`
	Name       *string   `msi:"Name"`
	Value      *string   `msi:"Value"`
	Sequence   *int      `msi:"Sequence"`
}

// WebError is a custom error page, keyed by code, sub code and parent.
type WebError struct {
	ErrorCode int       `msi:"ErrorCode,key"`
	SubCode   int       `msi:"SubCode,key"`
	Parent    ParentRef `msi:"ParentType+ParentValue,key"`
	File      *string   `msi:"File"`
	URL       *string   `msi:"URL"`
}

// WebServiceExtension allows or prohibits an ISAPI or CGI executable.
type WebServiceExtension struct {
	WebServiceExtension string  `msi:"WebServiceExtension,key"`
	Component           *string `msi:"Component_,ref=Component"`
	File                *string `msi:"File"`
	Description         *string `msi:"Description"`
	Group               *string `msi:"Group"`
	Attributes          *int    `msi:"Attributes"`
}

// Certificate is installed into StoreLocation/StoreName. Attributes packs
// the request, binary key and overwrite flags.
type Certificate struct {
	Certificate     string  `msi:"Certificate,key"`
	Component       *string `msi:"Component_,ref=Component"`
	Name            *string `msi:"Name"`
	StoreLocation   *int    `msi:"StoreLocation"`
	StoreName       *string `msi:"StoreName"`
	Attributes      *int    `msi:"Attributes"`
	Binary          *string `msi:"Binary_,ref=Binary"`
	CertificatePath *string `msi:"CertificatePath"`
	PFXPassword     *string `msi:"PFXPassword"`
}

// WebSiteCertificate binds a certificate to a site.
type WebSiteCertificate struct {
	Web         string `msi:"Web_,key,ref=IIsWebSite"`
	Certificate string `msi:"Certificate_,key,ref=Certificate"`
}

// Property is a server-wide IIS setting.
type Property struct {
	Property   string  `msi:"Property,key"`
	Component  *string `msi:"Component_,ref=Component"`
	Attributes *int    `msi:"Attributes"`
	Value      *string `msi:"Value"`
}

func (Directory) TableName() string               { return TableDirectory }
func (Component) TableName() string               { return TableComponent }
func (Binary) TableName() string                  { return TableBinary }
func (User) TableName() string                    { return TableUser }
func (WebLog) TableName() string                  { return TableWebLog }
func (WebDirProperties) TableName() string        { return TableWebDirProperties }
func (AppPool) TableName() string                 { return TableAppPool }
func (WebApplication) TableName() string          { return TableWebApplication }
func (WebApplicationExtension) TableName() string { return TableWebApplicationExtension }
func (WebSite) TableName() string                 { return TableWebSite }
func (WebAddress) TableName() string              { return TableWebAddress }
func (WebVirtualDir) TableName() string           { return TableWebVirtualDir }
func (WebDir) TableName() string                  { return TableWebDir }
func (Filter) TableName() string                  { return TableFilter }
func (MimeMap) TableName() string                 { return TableMimeMap }
func (HttpHeader) TableName() string              { return TableHttpHeader }
func (WebError) TableName() string                { return TableWebError }
func (WebServiceExtension) TableName() string     { return TableWebServiceExtension }
func (Certificate) TableName() string             { return TableCertificate }
func (WebSiteCertificate) TableName() string      { return TableWebSiteCertificates }
func (Property) TableName() string                { return TableProperty }
