// SPDX-License-Identifier: Apache-2.0

package federation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
)

// backupRules writes the current rule list to a timestamped file in dir
// before the mapping is rewritten. The file is the recovery path if a
// replace goes wrong, so a failed backup aborts the write.
func backupRules(dir string, now time.Time, rules []Rule) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errorx.ExternalError.Wrap(err, "failed to create backup directory %s", dir)
	}

	name := "rules_" + now.Format("2006-01-02_15:04:05") + ".json"
	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return "", errorx.ExternalError.Wrap(err, "failed to encode mapping rules")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errorx.ExternalError.Wrap(err, "failed to write backup %s", path)
	}

	logx.As().Info().Str("path", path).Int("rules", len(rules)).Msg("Backed up mapping rules")
	return path, nil
}
