package blogs

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/crucial707/blogapi/cmd/cli/client"
	"github.com/crucial707/blogapi/cmd/cli/config"
	"github.com/crucial707/blogapi/cmd/cli/output"
	"github.com/crucial707/blogapi/internal/models"
	"github.com/spf13/cobra"
)

type pageResponse struct {
	Status string                       `json:"status"`
	Blogs  models.Page[models.BlogView] `json:"blogs"`
}

type blogResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Blog    *models.BlogView `json:"blog"`
}

// ==========================
// Init Blogs
// ==========================
func InitBlogs(rootCmd *cobra.Command) {

	blogsCmd := &cobra.Command{
		Use:   "blogs",
		Short: "List and manage blogs",
	}

	blogsCmd.AddCommand(
		listBlogsCmd(),
		userBlogsCmd(),
		createBlogCmd(),
		updateBlogCmd(),
		deleteBlogCmd(),
	)

	rootCmd.AddCommand(blogsCmd)
}

// ==========================
// LIST
// ==========================
func listBlogsCmd() *cobra.Command {
	var q string
	var page, limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search public blogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := pageParams(page, limit)
			if q != "" {
				params.Set("q", q)
			}
			return printPage("/api/blog/public/?"+params.Encode(), asJSON)
		},
	}

	cmd.Flags().StringVar(&q, "q", "", "search text (title, content or hashtags)")
	addPageFlags(cmd, &page, &limit, &asJSON)
	return cmd
}

// ==========================
// USER
// ==========================
func userBlogsCmd() *cobra.Command {
	var page, limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "user [userId]",
		Short: "List blogs written by a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			path := fmt.Sprintf("/api/blog/public/user/%d?%s", id, pageParams(page, limit).Encode())
			return printPage(path, asJSON)
		},
	}

	addPageFlags(cmd, &page, &limit, &asJSON)
	return cmd
}

// ==========================
// CREATE
// ==========================
func createBlogCmd() *cobra.Command {
	var in blogFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a blog as the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.title == "" || in.content == "" {
				return errors.New("--title and --content are required")
			}
			return sendBlog(http.MethodPost, "/api/blog/secure/create", in, in.asJSON)
		},
	}

	in.register(cmd)
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateBlogCmd() *cobra.Command {
	var in blogFlags

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Replace a blog's title, content, hashtags and image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if in.title == "" || in.content == "" {
				return errors.New("--title and --content are required")
			}
			return sendBlog(http.MethodPut, fmt.Sprintf("/api/blog/secure/update/%d", id), in, in.asJSON)
		},
	}

	in.register(cmd)
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteBlogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a blog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			token, err := config.ReadToken()
			if err != nil {
				return err
			}

			var out blogResponse
			if err := client.Call(http.MethodDelete, fmt.Sprintf("/api/blog/secure/delete/%d", id), token, nil, &out); err != nil {
				return err
			}
			fmt.Println(out.Message)
			return nil
		},
	}
}

// ==========================
// Helpers
// ==========================

type blogFlags struct {
	title, content, hashTags, img string
	asJSON                        bool
}

func (f *blogFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "blog title (max 255 characters)")
	cmd.Flags().StringVar(&f.content, "content", "", "blog content (max 5000 characters)")
	cmd.Flags().StringVar(&f.hashTags, "hashtags", "", "hashtags, e.g. \"#go #web\"")
	cmd.Flags().StringVar(&f.img, "img", "", "image reference (URL)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "output raw JSON")
}

func addPageFlags(cmd *cobra.Command, page, limit *int, asJSON *bool) {
	cmd.Flags().IntVar(page, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(limit, "limit", 10, "page size")
	cmd.Flags().BoolVar(asJSON, "json", false, "output raw JSON")
}

func pageParams(page, limit int) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	return v
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func sendBlog(method, path string, in blogFlags, asJSON bool) error {
	token, err := config.ReadToken()
	if err != nil {
		return err
	}

	payload := map[string]string{
		"title":    in.title,
		"content":  in.content,
		"hashTags": in.hashTags,
		"img":      in.img,
	}
	var out blogResponse
	if err := client.Call(method, path, token, payload, &out); err != nil {
		return err
	}

	if asJSON {
		return output.PrintJSON(out)
	}
	fmt.Println(out.Message)
	if out.Blog != nil {
		renderBlogs([]models.BlogView{*out.Blog})
	}
	return nil
}

func printPage(path string, asJSON bool) error {
	var out pageResponse
	if err := client.Call(http.MethodGet, path, "", nil, &out); err != nil {
		return err
	}
	if asJSON {
		return output.PrintJSON(out.Blogs)
	}

	p := out.Blogs
	renderBlogs(p.Content, "", fmt.Sprintf("page %d of %d", p.Page, p.TotalPages), "", "", fmt.Sprintf("%d total", p.TotalElements), "")
	return nil
}

func renderBlogs(blogs []models.BlogView, footer ...interface{}) {
	headers := []string{"ID", "Title", "Author", "Likes", "Hashtags", "Created"}
	rows := make([][]interface{}, 0, len(blogs))
	for _, b := range blogs {
		author := b.Author.Name
		if author == "" {
			author = b.Author.Email
		}
		rows = append(rows, []interface{}{
			b.ID,
			truncate(b.Title, 40),
			author,
			b.Likes,
			truncate(b.HashTags, 30),
			b.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	output.RenderTable(headers, rows, footer...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
