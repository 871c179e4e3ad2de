package picker

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"
)

const (
	portalService    = "org.freedesktop.portal.Desktop"
	portalPath       = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	openFileMethod   = "org.freedesktop.portal.FileChooser.OpenFile"
	requestInterface = "org.freedesktop.portal.Request"
	responseSignal   = requestInterface + ".Response"
)

var tokenCounter atomic.Uint64

// Portal picks directories through the xdg-desktop-portal FileChooser.
type Portal struct {
	Title       string
	AcceptLabel string
}

// NewPortal returns a Portal with the default chooser labels.
func NewPortal() *Portal {
	return &Portal{
		Title:       "Select the Mega Mix directory",
		AcceptLabel: "Select",
	}
}

// PickDirectory blocks until the user answers the chooser or ctx is done.
func (p *Portal) PickDirectory(ctx context.Context) (string, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return "", fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer conn.Close()

	names := conn.Names()
	if len(names) == 0 {
		return "", errors.New("session bus connection has no unique name")
	}

	token := fmt.Sprintf("m4_%d", tokenCounter.Add(1))
	expected := requestPath(names[0], token)

	// Subscribe before calling so a fast response isn't missed
	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(requestInterface),
		dbus.WithMatchMember("Response"),
	); err != nil {
		return "", fmt.Errorf("failed to subscribe to portal responses: %w", err)
	}
	signals := make(chan *dbus.Signal, 4)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	options := map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(token),
		"accept_label": dbus.MakeVariant(p.AcceptLabel),
		"directory":    dbus.MakeVariant(true),
		"modal":        dbus.MakeVariant(true),
	}

	var handle dbus.ObjectPath
	obj := conn.Object(portalService, portalPath)
	if err := obj.CallWithContext(ctx, openFileMethod, 0, "", p.Title, options).Store(&handle); err != nil {
		return "", fmt.Errorf("file chooser call failed: %w", err)
	}
	// Older portals ignore handle_token and pick their own path
	if handle != expected {
		log.Debug("portal returned unexpected request handle", "want", expected, "got", handle)
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return "", errors.New("session bus closed while waiting for file chooser")
			}
			if sig.Name != responseSignal || sig.Path != handle {
				continue
			}
			return parseResponse(sig)
		}
	}
}

// requestPath is the object path the portal uses for a request made with token.
func requestPath(uniqueName, token string) dbus.ObjectPath {
	sender := strings.ReplaceAll(strings.TrimPrefix(uniqueName, ":"), ".", "_")
	return dbus.ObjectPath("/org/freedesktop/portal/desktop/request/" + sender + "/" + token)
}

// parseResponse turns a Request.Response signal into a local path.
func parseResponse(sig *dbus.Signal) (string, error) {
	if len(sig.Body) < 2 {
		return "", fmt.Errorf("malformed portal response: %d values", len(sig.Body))
	}
	code, ok := sig.Body[0].(uint32)
	if !ok {
		return "", fmt.Errorf("malformed portal response code %T", sig.Body[0])
	}
	if code != 0 {
		return "", ErrCancelled
	}

	results, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return "", fmt.Errorf("malformed portal results %T", sig.Body[1])
	}
	uris, ok := results["uris"].Value().([]string)
	if !ok || len(uris) == 0 {
		return "", errors.New("portal response carried no uris")
	}
	return uriToPath(uris[0])
}

func uriToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid uri %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported uri scheme %q", u.Scheme)
	}
	if u.Path == "" {
		return "", fmt.Errorf("uri %q has no path", uri)
	}
	return u.Path, nil
}
