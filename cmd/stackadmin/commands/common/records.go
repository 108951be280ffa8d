// SPDX-License-Identifier: Apache-2.0

package common

import (
	"bufio"
	"os"
	"strings"

	"github.com/joomcode/errorx"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
)

// ReadDirectoryFile parses a directory record file. One record per line,
// "display name,email"; blank lines and #-comments are skipped. Records with
// a missing name or email are rejected here so the engine never sees them.
func ReadDirectoryFile(path string) ([]cloud.DirectoryUser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errorx.ExternalError.Wrap(err, "failed to open %s", path).
			WithProperty(errorx.PropertyPayload(), path)
	}
	defer f.Close()

	var records []cloud.DirectoryUser
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, email, found := strings.Cut(line, ",")
		name = strings.TrimSpace(name)
		email = strings.TrimSpace(email)
		if !found || name == "" || email == "" {
			return nil, errorx.IllegalFormat.New("%s:%d: expected \"name,email\", got %q", path, lineNo, line)
		}
		records = append(records, cloud.DirectoryUser{Name: name, Email: email})
	}
	if err := scanner.Err(); err != nil {
		return nil, errorx.ExternalError.Wrap(err, "failed to read %s", path)
	}

	return records, nil
}
