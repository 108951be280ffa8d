// SPDX-License-Identifier: Apache-2.0

// Package workflows composes the tenant, access and federation primitives
// into the multi-step flows the commands run.
package workflows

import (
	"context"
	"fmt"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/skyhookcloud/stackadmin/internal/cloud"
	"github.com/skyhookcloud/stackadmin/internal/tenant"
)

// BootstrapOptions controls project bootstrap.
type BootstrapOptions struct {
	// AssumeComplete treats a pre-existing project as fully provisioned and
	// skips the network bootstrap. Turn it off to re-walk every resource of
	// a project that may have been left half built.
	AssumeComplete bool
}

// DefaultBootstrapOptions assumes pre-existing projects are complete.
func DefaultBootstrapOptions() BootstrapOptions {
	return BootstrapOptions{AssumeComplete: true}
}

// bootstrapState threads the resources resolved so far through the workflow
// steps. Each step fills in the field the next one reads.
type bootstrapState struct {
	sess    *cloud.Session
	project *cloud.Project
	network *cloud.Network
	subnet  *cloud.Subnet
	router  *cloud.Router
	secGrp  *cloud.SecurityGroup
}

// EnsureProject upserts the project and walks its standard topology: network,
// subnet, router wired to the external network, and the open ingress rule on
// the default security group. Every resource is located before it is created,
// so a rerun after a partial failure picks up where the failed run stopped.
func EnsureProject(ctx context.Context, s *cloud.Session, name string, opts BootstrapOptions) (*cloud.Project, bool, error) {
	project, created, report, err := BootstrapProject(ctx, s, name, opts)
	if err != nil {
		return project, created, err
	}
	if report != nil && report.Error != nil {
		return project, created, report.Error
	}
	return project, created, nil
}

// BootstrapProject is EnsureProject exposing the workflow report, so the
// command layer can surface the instructions failing steps attach. The report
// is nil when the topology walk was skipped.
func BootstrapProject(ctx context.Context, s *cloud.Session, name string, opts BootstrapOptions) (*cloud.Project, bool, *automa.Report, error) {
	project, created, err := tenant.EnsureProject(ctx, s, name)
	if err != nil {
		return nil, false, nil, err
	}

	if !created && opts.AssumeComplete {
		logx.As().Info().
			Str("project", project.Name).
			Str("id", project.ID).
			Msg("Found project, assuming its resources are complete")
		return project, false, nil, nil
	}

	st := &bootstrapState{sess: s, project: project}
	wb, err := projectBootstrapWorkflow(st).Build()
	if err != nil {
		return project, created, nil, err
	}
	return project, created, wb.Execute(ctx), nil
}

// projectBootstrapWorkflow builds the resource chain for a project. The step
// order is fixed: each resource depends on the one before it.
func projectBootstrapWorkflow(st *bootstrapState) *automa.WorkflowBuilder {
	return automa.NewWorkflowBuilder().WithId("project-bootstrap").Steps(
		ensureNetworkStep(st),
		ensureSubnetStep(st),
		ensureRouterStep(st),
		ensureSecurityGroupStep(st),
		ensureIngressRuleStep(st),
	)
}

// ensureNetworkStep upserts the project network.
func ensureNetworkStep(st *bootstrapState) automa.Builder {
	return automa.NewStepBuilder().WithId("ensure-network").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			network, _, err := tenant.EnsureNetwork(ctx, st.sess, st.project)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			st.network = network
			return automa.SuccessReport(stp)
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Error().Err(rpt.Error).Str("project", st.project.Name).Msg("Failed to ensure network")
		})
}

// ensureSubnetStep upserts the subnet on the project network.
func ensureSubnetStep(st *bootstrapState) automa.Builder {
	return automa.NewStepBuilder().WithId("ensure-subnet").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			subnet, _, err := tenant.EnsureSubnet(ctx, st.sess, st.project, st.network)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			st.subnet = subnet
			return automa.SuccessReport(stp)
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Error().Err(rpt.Error).Str("project", st.project.Name).Msg("Failed to ensure subnet")
		})
}

// ensureRouterStep upserts the router and its interface on the subnet.
func ensureRouterStep(st *bootstrapState) automa.Builder {
	return automa.NewStepBuilder().WithId("ensure-router").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			router, _, err := tenant.EnsureRouter(ctx, st.sess, st.project, st.network, st.subnet)
			if err != nil {
				if errorx.HasTrait(err, errorx.NotFound()) {
					meta := map[string]string{
						"instructions": fmt.Sprintf(
							"The router needs the external network %q in the service project %q.\nVerify both exist and rerun with --check-resources.",
							st.sess.Defaults.ExternalNetwork, st.sess.Defaults.ServiceProject),
					}
					return automa.FailureReport(stp, automa.WithError(err), automa.WithMetadata(meta))
				}
				return automa.FailureReport(stp, automa.WithError(err))
			}
			st.router = router
			return automa.SuccessReport(stp)
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Error().Err(rpt.Error).Str("project", st.project.Name).Msg("Failed to ensure router")
		})
}

// ensureSecurityGroupStep resolves the project's default security group,
// creating it only if the platform did not.
func ensureSecurityGroupStep(st *bootstrapState) automa.Builder {
	return automa.NewStepBuilder().WithId("ensure-security-group").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			secGrp, _, err := tenant.EnsureSecurityGroup(ctx, st.sess, st.project)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			st.secGrp = secGrp
			return automa.SuccessReport(stp)
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Error().Err(rpt.Error).Str("project", st.project.Name).Msg("Failed to ensure security group")
		})
}

// ensureIngressRuleStep upserts the open ingress rule on the default group.
func ensureIngressRuleStep(st *bootstrapState) automa.Builder {
	return automa.NewStepBuilder().WithId("ensure-ingress-rule").
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			_, _, err := tenant.EnsureOpenIngressRule(ctx, st.sess, st.secGrp)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}
			return automa.SuccessReport(stp)
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			logx.As().Error().Err(rpt.Error).Str("project", st.project.Name).Msg("Failed to ensure ingress rule")
		})
}
