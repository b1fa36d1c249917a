// Package response reads Installation Manager response files.
//
// A response file is the vendor's XML alternative to discrete install
// flags; imctl only extracts the four values that drive matching: the
// repository, the install target, and the offering id and version. The
// read is all-or-nothing; a response file missing any of them fails.
package response

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/conn-castle/imctl/internal/messages"
)

// ErrNotFound reports a missing response file.
var ErrNotFound = errors.New("response file not found")

// ErrParse reports a malformed or structurally incomplete response file.
var ErrParse = errors.New("response file unreadable")

// Data is the subset of a response file that matters for reconciliation.
type Data struct {
	Repository string
	Target     string
	PackageID  string
	Version    string
}

type xmlAgentInput struct {
	XMLName xml.Name `xml:"agent-input"`
	Server  struct {
		Repository struct {
			Location string `xml:"location,attr"`
		} `xml:"repository"`
	} `xml:"server"`
	Profile struct {
		InstallLocation string `xml:"installLocation,attr"`
	} `xml:"profile"`
	Install struct {
		Offering struct {
			ID      string `xml:"id,attr"`
			Version string `xml:"version,attr"`
		} `xml:"offering"`
	} `xml:"install"`
}

// Read parses the response file at path. All four fields must resolve;
// there is no partial result.
func Read(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf(messages.ResponseMissingFmt, ErrNotFound, path)
		}
		return nil, fmt.Errorf(messages.ResponseOpenFmt, path, err)
	}
	defer f.Close()

	var doc xmlAgentInput
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf(messages.ResponseDecodeFmt, ErrParse, path, err)
	}

	data := &Data{
		Repository: doc.Server.Repository.Location,
		Target:     doc.Profile.InstallLocation,
		PackageID:  doc.Install.Offering.ID,
		Version:    doc.Install.Offering.Version,
	}

	switch {
	case data.Repository == "":
		return nil, incomplete(path, "server/repository location")
	case data.Target == "":
		return nil, incomplete(path, "profile installLocation")
	case data.PackageID == "":
		return nil, incomplete(path, "install/offering id")
	case data.Version == "":
		return nil, incomplete(path, "install/offering version")
	}
	return data, nil
}

func incomplete(path, what string) error {
	return fmt.Errorf(messages.ResponseIncompleteFmt, ErrParse, path, what)
}
