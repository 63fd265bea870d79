package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/postbox/models"
	"github.com/cppla/postbox/store"
	"github.com/cppla/postbox/utils"
	"github.com/cppla/postbox/validators"
)

// PostController manages the caller's posts and their attachments.
type PostController struct {
	posts     *store.PostStore
	uploadDir string
}

// NewPostController creates a PostController saving uploads under uploadDir.
func NewPostController(posts *store.PostStore, uploadDir string) *PostController {
	return &PostController{posts: posts, uploadDir: uploadDir}
}

// postDetail is a post rendered without its id.
type postDetail struct {
	Content string  `json:"content"`
	File    *string `json:"file"`
	Author  string  `json:"author"`
}

// CreatePost stores a post authored by the caller. The payload may pick the id.
func (p *PostController) CreatePost(ctx *gin.Context) {
	author, ok := principal(ctx)
	if !ok {
		return
	}
	payload, ok := bindPayload(ctx)
	if !ok {
		return
	}

	postID, content, err := validators.ValidatePost(payload)
	if err != nil {
		respondError(ctx, err)
		return
	}

	post := p.posts.Add(postID, content, author)
	utils.Logger.Debug("post created", zap.Int("post_id", post.ID), zap.String("author", author), zapRequestID(ctx))
	utils.Success(ctx, post)
}

// ListPosts returns the caller's posts sorted by id with upper-cased content.
func (p *PostController) ListPosts(ctx *gin.Context) {
	author, ok := principal(ctx)
	if !ok {
		return
	}
	posts := p.posts.ListByAuthor(author)
	for i := range posts {
		posts[i].Content = strings.ToUpper(posts[i].Content)
	}
	utils.Success(ctx, posts)
}

// GetPost returns the caller's posts with the given id. An empty list is not an error.
func (p *PostController) GetPost(ctx *gin.Context) {
	author, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	utils.Success(ctx, details(p.posts.GetByIDForAuthor(id, author)))
}

// DeletePost removes every post carrying the id, whoever authored it.
func (p *PostController) DeletePost(ctx *gin.Context) {
	author, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if !p.posts.Delete(&id, author) {
		respondError(ctx, errNotFound("Пост с таким айди не существует"))
		return
	}
	utils.Logger.Info("post deleted", zap.Int("post_id", id), zap.String("by", author), zapRequestID(ctx))
	utils.Success(ctx, "done")
}

// DeleteAllPosts removes every post by the caller. It succeeds when there are none.
func (p *PostController) DeleteAllPosts(ctx *gin.Context) {
	author, ok := principal(ctx)
	if !ok {
		return
	}
	p.posts.Delete(nil, author)
	utils.Success(ctx, "done")
}

// UploadFile attaches an image from the multipart field "file" to the caller's post.
func (p *PostController) UploadFile(ctx *gin.Context) {
	author, ok := principal(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if len(p.posts.GetByIDForAuthor(id, author)) == 0 {
		respondError(ctx, errNotFound(fmt.Sprintf("Пост с таким айди для пользователя '%s' не существует", author)))
		return
	}

	blob, filename, err := readFilePart(ctx.Request, "file", validators.MaxUploadSize+1)
	if err != nil {
		respondError(ctx, &validators.ClientError{Msg: "Файл не передан!"})
		return
	}

	name, err := validators.ValidateUpload(blob, filename)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if _, err := utils.SaveUpload(p.uploadDir, name, blob); err != nil {
		utils.Logger.Error("save upload failed", zap.String("name", name), zap.Error(err), zapRequestID(ctx))
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to save file")
		return
	}

	attached := p.posts.AttachFile(id, name, author)
	if len(attached) == 0 {
		// deleted between the lookup and the attach
		respondError(ctx, errNotFound(fmt.Sprintf("Пост с таким айди для пользователя '%s' не существует", author)))
		return
	}
	utils.Success(ctx, attached)
}

func details(posts []models.Post) []postDetail {
	out := make([]postDetail, 0, len(posts))
	for _, p := range posts {
		out = append(out, postDetail{Content: p.Content, File: p.File, Author: p.Author})
	}
	return out
}

var errNoFilePart = errors.New("no file part")

// readFilePart streams the multipart body and returns the first part named
// field that is a file, i.e. carries a filename parameter even if it is empty.
// At most limit bytes are read.
func readFilePart(req *http.Request, field string, limit int64) ([]byte, string, error) {
	mr, err := req.MultipartReader()
	if err != nil {
		return nil, "", err
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, "", errNoFilePart
		}
		if err != nil {
			return nil, "", err
		}
		if part.FormName() != field {
			continue
		}
		_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
		if err != nil {
			continue
		}
		if _, isFile := params["filename"]; !isFile {
			continue
		}
		blob, err := io.ReadAll(io.LimitReader(part, limit))
		if err != nil {
			return nil, "", err
		}
		return blob, part.FileName(), nil
	}
}
