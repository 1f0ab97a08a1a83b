package composer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillchat-dev/quillchat/shared/config"
	"github.com/quillchat-dev/quillchat/shared/domain"
)

type MockBackendClient struct {
	MockIngestClient
	MockDeleteClient
}

func testPublicConfig() config.Public {
	return config.Public{
		AllowedDocumentMimeTypes:    testDocumentMimes,
		AllowedSpreadsheetMimeTypes: testSpreadsheetMimes,
		MaxAttachmentSizeBytes:      1 << 20,
	}
}

func TestSetAttachments_ReplacesWholesale(t *testing.T) {
	c := New(&MockBackendClient{}, testPublicConfig(), Hooks{
		Resync:   func(ctx context.Context) error { return nil },
		Dispatch: func(string) {},
	})

	first := domain.Attachments{{Id: "f-1", Name: "a.pdf", Kind: domain.FileKindDocument, ExtractedText: "t"}}
	second := domain.Attachments{{Id: "f-2", Name: "b.xlsx", Kind: domain.FileKindSpreadsheet, ExtractedText: "t"}}

	c.SetAttachments(first)
	c.SetAttachments(second)

	// replacement, never a merge
	require.Len(t, c.Attachments(), 1)
	assert.Equal(t, "f-2", c.Attachments()[0].Id)

	// idempotent
	c.SetAttachments(second)
	require.Len(t, c.Attachments(), 1)

	// the view is detached from the caller's slice
	second[0].Id = "mutated"
	assert.Equal(t, "f-2", c.Attachments()[0].Id)
}

func TestComposer_UploadThenResyncReflectsAuthoritativeState(t *testing.T) {
	client := &MockBackendClient{}
	notifier := &MockNotifier{}

	var c *Composer
	hooks := Hooks{
		// resync pulls whatever the collaborator returns; here that is
		// the set of everything uploaded so far
		Resync: func(ctx context.Context) error {
			c.SetAttachments(c.Uploads.Records())
			return nil
		},
		Dispatch: func(string) {},
		Notifier: notifier,
	}
	c = New(client, testPublicConfig(), hooks)

	selection := []domain.PendingUpload{
		pdf("report.pdf"),
		{Filename: "notes.txt", MimeType: "text/plain"},
		xlsx("data.xlsx"),
	}
	c.Uploads.Upload(context.Background(), selection, "thread-1")

	// exactly 2 records after resync, ids unique
	list := c.Attachments()
	require.Len(t, list, 2)
	assert.NotEqual(t, list[0].Id, list[1].Id)
	assert.Equal(t, "report.pdf", list[0].Name)
	assert.Equal(t, "data.xlsx", list[1].Name)
	require.Len(t, notifier.Warns, 1)
	assert.Contains(t, notifier.Warns[0], "1 unsupported file(s) skipped")
}

func TestComposer_SendLeavesAttachmentsUntouched(t *testing.T) {
	c := New(&MockBackendClient{}, testPublicConfig(), Hooks{
		Resync:   func(ctx context.Context) error { return nil },
		Dispatch: func(string) {},
	})
	c.SetAttachments(domain.Attachments{{Id: "f-1", Name: "a.pdf", Kind: domain.FileKindDocument, ExtractedText: "t"}})

	c.Text.SetDraft("question about the report")
	c.Text.HandleEnter(false)

	assert.Equal(t, "", c.Text.Draft())
	assert.Len(t, c.Attachments(), 1)
}
