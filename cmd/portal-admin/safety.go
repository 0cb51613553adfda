package main

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

var errAborted = errors.New("aborted")

// isRemoteHost reports whether host looks like anything other than this
// machine or an mDNS .local name.
func isRemoteHost(host string) bool {
	h := strings.ToLower(strings.TrimSpace(host))
	switch {
	case h == "" || h == "localhost" || strings.HasSuffix(h, ".local"):
		return false
	}
	if ip := net.ParseIP(h); ip != nil {
		return !ip.IsLoopback()
	}
	return true
}

// guardRemote refuses to touch a remote database unless --allow-remote was
// given and the operator retypes the host name. It reports whether the host
// is remote.
func (a *app) guardRemote(action string, allowed bool) (bool, error) {
	host := a.cfg.Postgres.Host
	if !isRemoteHost(host) {
		return false, nil
	}
	if !allowed {
		return true, fmt.Errorf("database host %q does not look local; pass --allow-remote to %s it", host, action)
	}
	fmt.Fprintf(a.stderr, "WARNING: about to %s the database on %q.\nType the host name to continue: ", action, host) //nolint:errcheck // prompt only
	answer, err := a.readLine()
	if err != nil {
		return true, err
	}
	if answer != host {
		return true, errAborted
	}
	return true, nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func (a *app) confirm(question string) (bool, error) {
	fmt.Fprintf(a.stdout, "%s [y/N]: ", question) //nolint:errcheck // prompt only
	answer, err := a.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (a *app) readLine() (string, error) {
	line, err := a.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
