package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const importDirectoryMessageType = "blog.markdown.import_directory"

// ImportDirectoryCommand triggers a filesystem walk for Markdown documents
// under the provided Directory and imports each as a blog post. Options map
// directly onto interfaces.ImportOptions.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load Markdown files from.
	Directory string `json:"directory"`
	// AuthorID sets the author recorded on created posts.
	AuthorID uuid.UUID `json:"author_id"`
	// Publish marks imported posts as published unless their frontmatter says draft.
	Publish bool `json:"publish,omitempty"`
	// DryRun previews the import without persisting posts or categories.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory and author input are present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.markdown.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.AuthorID, validation.By(func(any) error {
			if cmd.AuthorID == uuid.Nil {
				return validation.NewError("blog.markdown.import_directory.author_required", "author_id is required")
			}
			return nil
		})),
	)
}
