package common

const (
	// AuthorizationHeader carries "Bearer <token>" on callbacks and WOPI calls.
	AuthorizationHeader = "Authorization"

	// AccessTokenParam is the WOPI query parameter holding the access token.
	AccessTokenParam = "access_token"

	// DefaultFileType is used when a callback or token request omits the file type.
	DefaultFileType = "docx"

	// DefaultTitle is the document title used when a token request omits it.
	DefaultTitle = "Document.docx"
)
