package agentrun

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCreateTemplate(t *testing.T) {
	control := &fakeControlClient{
		createTemplateFn: func(ctx context.Context, input *CreateTemplateInput) (*TemplateSnapshot, error) {
			return &TemplateSnapshot{
				Name:         input.Name,
				TemplateType: input.TemplateType,
				Status:       TemplateStatusCreating,
				CPU:          input.CPU,
				MemoryMB:     input.MemoryMB,
			}, nil
		},
	}
	client := newTestClient(t, control)

	template, err := client.CreateTemplate(context.Background(), &CreateTemplateParams{
		Name:         "python-3.12",
		TemplateType: TemplateTypeCodeInterpreter,
		CPU:          2,
		MemoryMB:     4096,
	})
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}

	if template.Name != "python-3.12" {
		t.Errorf("Name = %q", template.Name)
	}
	if template.Status != TemplateStatusCreating {
		t.Errorf("Status = %q", template.Status)
	}
	if template.CPU != 2 || template.MemoryMB != 4096 {
		t.Errorf("resources = %v CPU, %v MiB", template.CPU, template.MemoryMB)
	}
}

func TestCreateTemplateValidation(t *testing.T) {
	client := newTestClient(t, &fakeControlClient{})

	_, err := client.CreateTemplate(context.Background(), nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("CreateTemplate(nil) error = %v, want ErrInvalidArgument", err)
	}

	_, err = client.CreateTemplate(context.Background(), &CreateTemplateParams{TemplateType: TemplateTypeBrowserUse})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("CreateTemplate(no name) error = %v, want ErrInvalidArgument", err)
	}
}

func TestCreateTemplateNamedDeprecation(t *testing.T) {
	var gotInput *CreateTemplateInput
	control := &fakeControlClient{
		createTemplateFn: func(ctx context.Context, input *CreateTemplateInput) (*TemplateSnapshot, error) {
			gotInput = input
			return &TemplateSnapshot{Name: input.Name, TemplateType: input.TemplateType}, nil
		},
	}
	logger := &capturingLogger{}
	client := newTestClient(t, control, WithLogger(logger))

	_, err := client.CreateTemplateNamed(context.Background(), "browsers", TemplateTypeBrowserUse)
	if err != nil {
		t.Fatalf("CreateTemplateNamed() error = %v", err)
	}
	if gotInput.Name != "browsers" || gotInput.TemplateType != TemplateTypeBrowserUse {
		t.Errorf("input = %+v, want delegated params", gotInput)
	}

	found := false
	for _, line := range logger.all() {
		if strings.Contains(line, "deprecated") && strings.Contains(line, "CreateTemplateNamed") {
			found = true
		}
	}
	if !found {
		t.Errorf("debug lines = %v, want deprecation notice", logger.all())
	}
}

func TestGetTemplateNotFound(t *testing.T) {
	control := &fakeControlClient{
		getTemplateFn: func(ctx context.Context, name string) (*TemplateSnapshot, error) {
			return nil, NewClientError(404, "no such template")
		},
	}
	client := newTestClient(t, control)

	_, err := client.GetTemplate(context.Background(), "missing")
	var notExist *ResourceNotExistError
	if !errors.As(err, &notExist) {
		t.Fatalf("GetTemplate() error = %v, want ResourceNotExistError", err)
	}
	if notExist.ResourceType != ResourceTypeTemplate {
		t.Errorf("ResourceType = %q, want Template", notExist.ResourceType)
	}
}

func TestListTemplates(t *testing.T) {
	var gotInput *ListTemplatesInput
	control := &fakeControlClient{
		listTemplatesFn: func(ctx context.Context, input *ListTemplatesInput) ([]*TemplateSnapshot, error) {
			gotInput = input
			return []*TemplateSnapshot{{Name: "a"}, {Name: "b"}}, nil
		},
	}
	client := newTestClient(t, control)

	templates, err := client.ListTemplates(context.Background(), &ListTemplatesInput{
		TemplateType: TemplateTypeCodeInterpreter,
	})
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("ListTemplates() = %d templates, want 2", len(templates))
	}
	if gotInput.TemplateType != TemplateTypeCodeInterpreter {
		t.Errorf("filter = %q, want CodeInterpreter", gotInput.TemplateType)
	}
}

func TestTemplateWaitUntilReady(t *testing.T) {
	statuses := []string{TemplateStatusCreating, TemplateStatusReady}
	call := 0
	control := &fakeControlClient{
		getTemplateFn: func(ctx context.Context, name string) (*TemplateSnapshot, error) {
			status := statuses[call]
			if call < len(statuses)-1 {
				call++
			}
			return &TemplateSnapshot{Name: name, Status: status}, nil
		},
	}
	client := newTestClient(t, control)
	template := newTemplateFromSnapshot(client, &TemplateSnapshot{Name: "tpl", Status: TemplateStatusCreating})

	got, err := template.WaitUntilReady(context.Background(),
		&PollOptions{Timeout: 5 * time.Second, Interval: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("WaitUntilReady() error = %v", err)
	}
	if got.Status != TemplateStatusReady {
		t.Errorf("Status = %q, want READY", got.Status)
	}
}

func TestTemplateWaitUntilReadyFailure(t *testing.T) {
	control := &fakeControlClient{
		getTemplateFn: func(ctx context.Context, name string) (*TemplateSnapshot, error) {
			return &TemplateSnapshot{
				Name:         name,
				Status:       TemplateStatusCreateFailed,
				StatusReason: "image build failed",
			}, nil
		},
	}
	client := newTestClient(t, control)
	template := newTemplateFromSnapshot(client, &TemplateSnapshot{Name: "tpl"})

	_, err := template.WaitUntilReady(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "image build failed") {
		t.Errorf("WaitUntilReady() error = %v, want failure reason", err)
	}
}

func TestTemplateDelete(t *testing.T) {
	deleted := ""
	control := &fakeControlClient{
		deleteTemplateFn: func(ctx context.Context, name string) error {
			deleted = name
			return nil
		},
	}
	client := newTestClient(t, control)
	template := newTemplateFromSnapshot(client, &TemplateSnapshot{Name: "tpl"})

	if err := template.Delete(context.Background()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted != "tpl" {
		t.Errorf("deleted = %q, want tpl", deleted)
	}
}
