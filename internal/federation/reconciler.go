// SPDX-License-Identifier: Apache-2.0

package federation

import (
	"context"
	"time"

	"github.com/automa-saga/logx"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
)

// GroupNamePrefix prefixes the per-user federation groups so they are easy to
// tell apart from hand-made groups.
const GroupNamePrefix = "User: "

// GroupName returns the per-user group name for an email.
func GroupName(email string) string {
	return GroupNamePrefix + email
}

// Result reports what a mapping reconciliation did, keyed by email.
type Result struct {
	Added     []string
	Unchanged []string
	// BackupPath is set when a backup was written, i.e. when the mapping
	// was rewritten.
	BackupPath string
}

// Reconciler converges the identity provider's attribute mapping and the
// per-user groups it routes logins into.
type Reconciler struct {
	sess     *cloud.Session
	mappings MappingAPI
	// backupDir receives a snapshot of the rule list before every rewrite.
	backupDir string
	// now is stubbed in tests to pin backup file names.
	now func() time.Time
}

// NewReconciler wires a reconciler against a session and a mapping endpoint.
func NewReconciler(sess *cloud.Session, mappings MappingAPI, backupDir string) *Reconciler {
	return &Reconciler{
		sess:      sess,
		mappings:  mappings,
		backupDir: backupDir,
		now:       time.Now,
	}
}

// EnsureGroup upserts the per-user group for an email, describing it with the
// user's display name. The session's group cache serves the lookup so a batch
// of ensures lists groups once.
func (r *Reconciler) EnsureGroup(ctx context.Context, email, displayName string) (*cloud.Group, bool, error) {
	name := GroupName(email)

	groups, err := r.sess.GroupList(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range groups {
		if groups[i].Name == name {
			logx.As().Info().Str("group", name).Str("id", groups[i].ID).Msg("Found group")
			return &groups[i], false, nil
		}
	}

	group, err := r.sess.Groups.CreateGroup(ctx, cloud.GroupSpec{
		Name:        name,
		Description: displayName,
		DomainID:    r.sess.Defaults.Domain,
	})
	if err != nil {
		return nil, false, err
	}
	r.sess.RememberGroup(*group)
	logx.As().Info().Str("group", name).Str("id", group.ID).Msg("Created group")
	return group, true, nil
}

// EnsureMappings makes sure every binding has a rule in the mapping. Already
// present bindings are left byte-for-byte alone. When nothing is missing the
// mapping is not rewritten and no backup is taken; otherwise the current rule
// list is backed up first and the missing rules are appended after the
// existing ones.
func (r *Reconciler) EnsureMappings(ctx context.Context, bindings []Binding) (Result, error) {
	rules, err := r.mappings.Rules(ctx)
	if err != nil {
		return Result{}, err
	}

	var result Result
	var pending []Rule
	for _, b := range bindings {
		found := false
		for _, rule := range rules {
			if rule.MatchesBinding(b) {
				found = true
				break
			}
		}
		if found {
			logx.As().Info().Str("email", b.Email).Msg("Found mapping rule")
			result.Unchanged = append(result.Unchanged, b.Email)
			continue
		}
		pending = append(pending, NewUserRule(b.Email, b.GroupID))
		result.Added = append(result.Added, b.Email)
	}

	if len(pending) == 0 {
		logx.As().Info().Int("bindings", len(bindings)).Msg("All mapping rules present, nothing to write")
		return result, nil
	}

	backupPath, err := backupRules(r.backupDir, r.now(), rules)
	if err != nil {
		return result, err
	}
	result.BackupPath = backupPath

	if err := r.mappings.Replace(ctx, append(rules, pending...)); err != nil {
		return result, err
	}
	logx.As().Info().Int("added", len(pending)).Msg("Updated mapping rules")
	return result, nil
}

// GroupRules returns the rules that route logins into the group.
func (r *Reconciler) GroupRules(ctx context.Context, groupID string) ([]Rule, error) {
	rules, err := r.mappings.Rules(ctx)
	if err != nil {
		return nil, err
	}
	var matched []Rule
	for _, rule := range rules {
		if rule.ReferencesGroup(groupID) {
			matched = append(matched, rule)
		}
	}
	return matched, nil
}

// DeleteGroups removes the per-user groups for the emails along with every
// mapping rule that references them. The mapping is pruned first, in one
// rewrite after a backup and only if any rule actually referenced a doomed
// group. Pruning before deleting keeps a rerun able to finish the job: as
// long as a group exists its rules are still reachable.
func (r *Reconciler) DeleteGroups(ctx context.Context, emails []string) error {
	groups, err := r.sess.GroupList(ctx)
	if err != nil {
		return err
	}

	var doomed []cloud.Group
	for _, email := range emails {
		name := GroupName(email)
		for _, g := range groups {
			if g.Name == name {
				doomed = append(doomed, g)
			}
		}
	}
	if len(doomed) == 0 {
		return nil
	}

	if err := r.pruneRules(ctx, doomed); err != nil {
		return err
	}

	for _, g := range doomed {
		if err := r.sess.Groups.DeleteGroup(ctx, g.ID); err != nil {
			r.sess.InvalidateCaches()
			return err
		}
		logx.As().Info().Str("group", g.Name).Str("id", g.ID).Msg("Deleted group")
	}
	r.sess.InvalidateCaches()
	return nil
}

// pruneRules rewrites the mapping without the rules referencing any of the
// groups. A clean mapping is left untouched and unbacked.
func (r *Reconciler) pruneRules(ctx context.Context, groups []cloud.Group) error {
	rules, err := r.mappings.Rules(ctx)
	if err != nil {
		return err
	}

	var kept []Rule
	removed := 0
	for _, rule := range rules {
		drop := false
		for _, g := range groups {
			if rule.ReferencesGroup(g.ID) {
				drop = true
				break
			}
		}
		if drop {
			removed++
		} else {
			kept = append(kept, rule)
		}
	}
	if removed == 0 {
		return nil
	}

	if _, err := backupRules(r.backupDir, r.now(), rules); err != nil {
		return err
	}
	if err := r.mappings.Replace(ctx, kept); err != nil {
		return err
	}
	logx.As().Info().Int("removed", removed).Msg("Pruned mapping rules for doomed groups")
	return nil
}
