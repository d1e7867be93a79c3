package wopi

import (
	"encoding/xml"
	"strings"
)

// App lists the actions available for one MIME type.
type App struct {
	Name    string   `xml:"name,attr"`
	Actions []Action `xml:"action"`
}

type Action struct {
	Name   string `xml:"name,attr"`
	Ext    string `xml:"ext,attr"`
	URLSrc string `xml:"urlsrc,attr"`
}

type NetZone struct {
	Name string `xml:"name,attr"`
	Apps []App  `xml:"app"`
}

// Discovery is the <wopi-discovery> document.
type Discovery struct {
	XMLName xml.Name `xml:"wopi-discovery"`
	NetZone NetZone  `xml:"net-zone"`
}

var officeFormats = []struct {
	mime string
	ext  string
}{
	{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "docx"},
	{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"},
	{"application/vnd.openxmlformats-officedocument.presentationml.presentation", "pptx"},
}

// LaunchURL is the editor entry point used as urlsrc for every action.
func LaunchURL(editorURL string) string {
	return strings.TrimRight(editorURL, "/") + "/loleaflet/dist/loleaflet.html?"
}

// NewDiscovery describes edit and view actions for the supported office
// formats, all launched through editorURL.
func NewDiscovery(editorURL string) Discovery {
	src := LaunchURL(editorURL)

	d := Discovery{NetZone: NetZone{Name: "external-http"}}
	for _, f := range officeFormats {
		d.NetZone.Apps = append(d.NetZone.Apps, App{
			Name: f.mime,
			Actions: []Action{
				{Name: "edit", Ext: f.ext, URLSrc: src},
				{Name: "view", Ext: f.ext, URLSrc: src},
			},
		})
	}
	return d
}

// Marshal renders the manifest with an XML declaration. The result never
// changes for a given editor URL, so callers render it once at startup.
func (d Discovery) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
