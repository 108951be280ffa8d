// SPDX-License-Identifier: Apache-2.0

// Package common holds the helpers shared by the command groups: session
// construction, prompts and output rendering.
package common

import (
	"context"

	"github.com/automa-saga/logx"
	"github.com/charmbracelet/huh"
	"github.com/joomcode/errorx"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/cloud/openstack"
	"github.com/skyhookcloud/stackadmin/internal/config"
	"github.com/skyhookcloud/stackadmin/internal/federation"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewSession authenticates with the configured credentials and returns a
// session plus the underlying client (needed for the federation endpoint).
func NewSession(ctx context.Context) (*cloud.Session, *openstack.Client, error) {
	cfg := config.Get()
	if err := cfg.Auth.Validate(); err != nil {
		return nil, nil, err
	}

	client, err := openstack.New(ctx, openstack.Options{
		AuthURL:         cfg.Auth.AuthURL,
		Username:        cfg.Auth.Username,
		Password:        cfg.Auth.Password,
		UserDomainID:    cfg.Auth.UserDomainID,
		ProjectName:     cfg.Auth.ProjectName,
		ProjectDomainID: cfg.Auth.ProjectDomainID,
	}, openstack.WithLogger(logx.As()))
	if err != nil {
		return nil, nil, err
	}

	sess := cloud.NewSession(client.APIs(), cloud.Defaults{
		Domain:          cfg.Cloud.Domain,
		RoleName:        cfg.Cloud.RoleName,
		ServiceProject:  cfg.Cloud.ServiceProject,
		ExternalNetwork: cfg.Cloud.ExternalNetwork,
	})
	return sess, client, nil
}

// NewFederationReconciler wires a reconciler against the configured mapping.
func NewFederationReconciler(sess *cloud.Session, client *openstack.Client) *federation.Reconciler {
	cfg := config.Get()
	return federation.NewReconciler(sess, client.Mappings(cfg.Cloud.MappingName), cfg.Cloud.BackupDir)
}

// Confirm asks before a destructive action. The yes flag skips the prompt for
// scripted use.
func Confirm(title string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if err != nil {
		return false, errorx.ExternalError.Wrap(err, "confirmation prompt failed")
	}
	return ok, nil
}

// PrintYAML renders a record the way show/version output it.
func PrintYAML(cmd *cobra.Command, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return errorx.IllegalFormat.Wrap(err, "failed to render output")
	}
	cmd.Println(string(data))
	return nil
}
