package share

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"os/exec"
	"runtime"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/janpfeifer/retouch/gallery"
)

// Drive uploads committed snapshots to a fixed folder path in the user's
// Google Drive and shares them read-only by link.
type Drive struct {
	path []string

	jsonToken string
	config    *oauth2.Config
	token     *oauth2.Token
	client    *http.Client
	service   *drive.Service

	// SetToken is called whenever the authorization token is renewed, so
	// callers can save it and pass it back on the next run. May be nil.
	SetToken func(string)

	// EnterAuthorization is called when a new authorization is needed:
	// the browser is opened on Google's consent page and this callback
	// must return the authorization code the user receives.
	EnterAuthorization func() string
}

// NewDrive creates a Drive uploader writing into the folder named by
// path. credentialsJSON is the OAuth application credential;
// token may be a previously saved authorization token or empty.
func NewDrive(ctx context.Context, credentialsJSON []byte, path []string, token string,
	setToken func(string), enterAuthorization func() string) (*Drive, error) {
	d := &Drive{
		path:               path,
		jsonToken:          token,
		SetToken:           setToken,
		EnterAuthorization: enterAuthorization,
	}
	var err error
	d.config, err = google.ConfigFromJSON(credentialsJSON, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse drive credentials: %w", err)
	}

	if d.jsonToken != "" {
		tok := &oauth2.Token{}
		if err := json.NewDecoder(strings.NewReader(d.jsonToken)).Decode(tok); err != nil {
			glog.Errorf("unable to parse saved drive token, ignoring it: %s", err)
			d.jsonToken = ""
		} else {
			d.token = tok
		}
	}

	d.client, err = d.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	d.service, err = drive.NewService(ctx, option.WithHTTPClient(d.client))
	if err != nil {
		return nil, fmt.Errorf("unable to create drive service: %w", err)
	}
	return d, nil
}

// UploadSnapshot uploads one snapshot as PNG, named after its label, and
// returns the shareable link.
func (d *Drive) UploadSnapshot(ctx context.Context, snap gallery.Snapshot) (url string, err error) {
	parentID, err := d.createPath(ctx)
	if err != nil {
		return "", err
	}

	var content bytes.Buffer
	if err = png.Encode(&content, snap.Image()); err != nil {
		return "", fmt.Errorf("failed to encode snapshot %s: %w", snap.ID(), err)
	}

	f := &drive.File{
		MimeType: "image/png",
		Name:     fileName(snap),
		Parents:  []string{parentID},
	}
	f, err = d.service.Files.Create(f).
		Context(ctx).
		Media(bytes.NewReader(content.Bytes())).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	glog.V(2).Infof("uploaded snapshot %s as %q (file id=%q)", snap.ID(), f.Name, f.Id)

	// Visible (but not writeable) to anyone with the link.
	_, err = d.service.Permissions.Create(f.Id, &drive.Permission{
		AllowFileDiscovery: false,
		Role:               "reader",
		Type:               "anyone",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create shared read permissions for %q: %w", f.Name, err)
	}

	f2, err := d.service.Files.Get(f.Id).Fields("webViewLink").Do()
	if err != nil {
		return "", fmt.Errorf("failed to get shared link for %q: %w", f.Name, err)
	}
	return f2.WebViewLink, nil
}

// fileName derives a Drive file name from the snapshot label, e.g.
// "Sepia (+20%).png". Slashes are the only characters Drive rejects.
func fileName(snap gallery.Snapshot) string {
	return strings.ReplaceAll(snap.Label(), "/", "-") + ".png"
}

// Retrieve a token, save it through SetToken, build the client.
func (d *Drive) getClient(ctx context.Context) (*http.Client, error) {
	if d.jsonToken == "" || d.token == nil {
		tok, err := d.getTokenFromWeb(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get authorization from the web: %w", err)
		}
		d.token = tok
		var b strings.Builder
		_ = json.NewEncoder(&b).Encode(d.token)
		d.jsonToken = b.String()
		if d.SetToken != nil {
			d.SetToken(d.jsonToken)
		}
	}
	return d.config.Client(ctx, d.token), nil
}

func (d *Drive) getTokenFromWeb(ctx context.Context) (*oauth2.Token, error) {
	authURL := d.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	if err := openURL(authURL); err != nil {
		return nil, err
	}
	authCode := d.EnterAuthorization()
	if authCode == "" {
		return nil, fmt.Errorf("no drive authorization given")
	}
	tok, err := d.config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token with authorization given: %w", err)
	}
	return tok, nil
}

const folderMimeType = "application/vnd.google-apps.folder"

// createPath creates the configured folder path, if it doesn't yet exist.
func (d *Drive) createPath(ctx context.Context) (id string, err error) {
	id = "root"
	for i, part := range d.path {
		fileList, err := d.service.Files.List().
			Q(fmt.Sprintf("mimeType = '%s' and trashed=false and '%s' in parents and name='%s'",
				folderMimeType, id, part)).
			Do()
		if err != nil {
			return "", fmt.Errorf("failed to find subdirectory %q in %v: %w", part, d.path[:i], err)
		}
		if len(fileList.Files) == 0 {
			f := &drive.File{
				MimeType: folderMimeType,
				Name:     part,
				Parents:  []string{id},
			}
			f, err = d.service.Files.Create(f).Context(ctx).Do()
			if err != nil {
				return "", fmt.Errorf("failed to create sub-folder %q in %v: %w", part, d.path[:i], err)
			}
			id = f.Id
		} else {
			// Drive allows duplicate names; take the first match.
			id = fileList.Files[0].Id
		}
		glog.V(2).Infof("drive path part %q: id=%q", part, id)
	}
	return id, nil
}

func openURL(url string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	}
	return fmt.Errorf("unsupported platform %q -- don't know how to open a browser", runtime.GOOS)
}
