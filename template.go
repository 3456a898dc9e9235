package agentrun

import (
	"context"
	"fmt"
)

// Template is a mutable projection of one remote template. Refresh and
// WaitUntilReady mutate the receiver in place.
type Template struct {
	// Name is the template name; templates are addressed by name.
	Name string

	// TemplateType selects the sandbox wrapper for sandboxes created from
	// this template.
	TemplateType TemplateType

	// Status is the build status reported by the control plane.
	Status string

	// StatusReason explains the current status, when the service reports
	// one.
	StatusReason string

	// CPU is the number of CPU cores allotted per sandbox.
	CPU float64

	// MemoryMB is the memory in MiB allotted per sandbox.
	MemoryMB int

	// CreatedAt and UpdatedAt are service-reported timestamps.
	CreatedAt string
	UpdatedAt string

	client *Client
}

// CreateTemplateParams describes a template to create.
type CreateTemplateParams struct {
	Name         string
	TemplateType TemplateType
	CPU          float64
	MemoryMB     int
	Image        string
}

// CreateTemplate registers a template and returns its initial snapshot.
// Template builds are asynchronous; call WaitUntilReady to block until the
// template can serve sandboxes.
func (c *Client) CreateTemplate(ctx context.Context, params *CreateTemplateParams) (*Template, error) {
	if params == nil || params.Name == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrInvalidArgument)
	}

	snap, err := c.control.CreateTemplate(ctx, &CreateTemplateInput{
		Name:         params.Name,
		TemplateType: params.TemplateType,
		CPU:          params.CPU,
		MemoryMB:     params.MemoryMB,
		Image:        params.Image,
	})
	if err != nil {
		return nil, toResourceError(err, ResourceTypeTemplate, params.Name)
	}

	return newTemplateFromSnapshot(c, snap), nil
}

// CreateTemplateNamed is the legacy positional form of CreateTemplate.
//
// Deprecated: use CreateTemplate with CreateTemplateParams.
func (c *Client) CreateTemplateNamed(ctx context.Context, name string, templateType TemplateType) (*Template, error) {
	c.logger.Debugf("deprecated: CreateTemplateNamed is superseded by CreateTemplate (name=%q, type=%q)", name, templateType)
	return c.CreateTemplate(ctx, &CreateTemplateParams{Name: name, TemplateType: templateType})
}

// GetTemplate returns the template with the given name.
func (c *Client) GetTemplate(ctx context.Context, name string) (*Template, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: template name is required", ErrInvalidArgument)
	}

	snap, err := c.control.GetTemplate(ctx, name)
	if err != nil {
		return nil, toResourceError(err, ResourceTypeTemplate, name)
	}

	return newTemplateFromSnapshot(c, snap), nil
}

// ListTemplates returns the templates matching params. A nil params lists
// everything.
func (c *Client) ListTemplates(ctx context.Context, params *ListTemplatesInput) ([]*Template, error) {
	if params == nil {
		params = &ListTemplatesInput{}
	}

	snaps, err := c.control.ListTemplates(ctx, params)
	if err != nil {
		return nil, err
	}

	templates := make([]*Template, len(snaps))
	for i, snap := range snaps {
		templates[i] = newTemplateFromSnapshot(c, snap)
	}
	return templates, nil
}

// DeleteTemplate removes the template with the given name.
func (c *Client) DeleteTemplate(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: template name is required", ErrInvalidArgument)
	}
	if err := c.control.DeleteTemplate(ctx, name); err != nil {
		return toResourceError(err, ResourceTypeTemplate, name)
	}
	return nil
}

func newTemplateFromSnapshot(c *Client, snap *TemplateSnapshot) *Template {
	t := &Template{client: c}
	t.applySnapshot(snap)
	return t
}

// applySnapshot copies snapshot fields onto the receiver in place.
func (t *Template) applySnapshot(snap *TemplateSnapshot) {
	t.Name = snap.Name
	t.TemplateType = snap.TemplateType
	t.Status = snap.Status
	t.StatusReason = snap.StatusReason
	t.CPU = snap.CPU
	t.MemoryMB = snap.MemoryMB
	t.CreatedAt = snap.CreatedAt
	t.UpdatedAt = snap.UpdatedAt
}

// Refresh re-fetches the template snapshot and mutates the receiver in
// place.
func (t *Template) Refresh(ctx context.Context) error {
	snap, err := t.client.control.GetTemplate(ctx, t.Name)
	if err != nil {
		return toResourceError(err, ResourceTypeTemplate, t.Name)
	}
	t.applySnapshot(snap)
	return nil
}

// WaitUntil polls Refresh until the template status lands in successStates
// or failureStates, or the PollOptions budget runs out.
func (t *Template) WaitUntil(ctx context.Context, successStates, failureStates []string, opts *PollOptions) (*Template, error) {
	err := waitForState(ctx, opts, func(ctx context.Context) (string, string, error) {
		if err := t.Refresh(ctx); err != nil {
			return "", "", err
		}
		return t.Status, t.StatusReason, nil
	}, successStates, failureStates)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// WaitUntilReady waits for the template build to finish. READY is the
// success state; CREATE_FAILED is the terminal failure state.
func (t *Template) WaitUntilReady(ctx context.Context, opts *PollOptions) (*Template, error) {
	return t.WaitUntil(ctx,
		[]string{TemplateStatusReady},
		[]string{TemplateStatusCreateFailed},
		opts)
}

// Delete removes the template via the control plane.
func (t *Template) Delete(ctx context.Context) error {
	return t.client.DeleteTemplate(ctx, t.Name)
}
