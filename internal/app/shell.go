package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"bulletin/internal/access"
	"bulletin/internal/model"
	"bulletin/internal/service"
	"bulletin/pkg/logger"
	"bulletin/pkg/pagination"

	"go.uber.org/zap"
)

const timeLayout = "2006-01-02 15:04"

var errNoDetail = fmt.Errorf("open a post with show first: %w", service.ErrInvalidRequest)

const helpText = `commands:
  whoami | login EMAIL PASSWORD | logout | register NAME EMAIL PASSWORD
  profile name NAME | profile password PASSWORD
  list | search [TEXT] | type [TEXT] | page N | size N
  show ID | post [secret] TITLE | BODY [| FILE ...]
  edit ID TITLE | BODY | secret ID on|off | delete ID
  comment TEXT | editcomment ID TEXT | uncomment ID
  attach FILE | download ID PATH | rmfile ID
  users | rename ID NAME | resetpw ID PASSWORD | allposts [N] | purge ID
  help | quit`

type shell struct {
	app    *App
	out    io.Writer
	states <-chan service.ListingState[model.Post]
	detail *service.Detail
}

// Run reads commands from in until EOF, quit or ctx is done and writes what
// the listing and detail surfaces show to out.
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	log := logger.FromContext(ctx)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	states, err := a.Feed.Subscribe(runCtx, PostsTopic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", PostsTopic, err)
	}

	sh := &shell{app: a, out: out, states: states}
	a.Start(ctx)
	sh.settle()

	lines := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-runCtx.Done():
				return
			}
		}
		errCh <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown requested")
			return nil
		case err := <-errCh:
			return err
		case line := <-lines:
			if sh.exec(ctx, line) {
				return nil
			}
		}
	}
}

// exec runs one command line and reports whether the shell should stop.
func (sh *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

	var err error
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		sh.println(helpText)
	case "whoami":
		sh.whoami()
	case "login":
		err = sh.login(ctx, args)
	case "logout":
		sh.app.Session.SignOut(ctx)
		sh.println("logged out")
	case "register":
		err = sh.register(ctx, args)
	case "profile":
		err = sh.profile(ctx, args)
	case "list":
		sh.app.Listing.Load(ctx)
	case "search":
		sh.app.Listing.SubmitQuery(ctx, rest)
	case "type":
		// keystrokes: the fetch runs once typing pauses and shows up with
		// the next command
		sh.app.Listing.TypeQuery(ctx, rest)
	case "page":
		err = sh.page(ctx, args)
	case "size":
		err = sh.size(ctx, args)
	case "show":
		err = sh.show(ctx, args)
	case "post":
		err = sh.post(ctx, rest)
	case "edit":
		err = sh.edit(ctx, args, rest)
	case "secret":
		err = sh.secret(ctx, args)
	case "delete":
		err = sh.delete(ctx, args)
	case "comment":
		err = sh.comment(ctx, rest)
	case "editcomment":
		err = sh.editComment(ctx, args)
	case "uncomment":
		err = sh.uncomment(ctx, args)
	case "attach":
		err = sh.attach(ctx, args)
	case "download":
		err = sh.download(ctx, args)
	case "rmfile":
		err = sh.removeFile(ctx, args)
	case "users":
		err = sh.users(ctx)
	case "rename":
		err = sh.rename(ctx, args)
	case "resetpw":
		err = sh.resetPassword(ctx, args)
	case "allposts":
		err = sh.allPosts(ctx, args)
	case "purge":
		err = sh.purge(ctx, args)
	default:
		err = fmt.Errorf("unknown command %q: %w", cmd, service.ErrInvalidRequest)
	}

	if err != nil {
		sh.fail(ctx, cmd, err)
	}
	sh.settle()
	return false
}

func (sh *shell) identity() *model.Identity {
	return sh.app.Session.Current()
}

func (sh *shell) println(a ...any) {
	_, _ = fmt.Fprintln(sh.out, a...)
}

func (sh *shell) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(sh.out, format, a...)
}

func (sh *shell) fail(ctx context.Context, cmd string, err error) {
	logger.FromContext(ctx).Debug("command failed", zap.String("command", cmd), zap.Error(err))
	sh.printf("error: %s\n", service.UserMessage(err))
}

// settle waits for in-flight fetches and renders the newest listing state
// the feed delivered, if any.
func (sh *shell) settle() {
	sh.app.Listing.Wait()

	var (
		last service.ListingState[model.Post]
		got  bool
	)
drain:
	for {
		select {
		case s, ok := <-sh.states:
			if !ok {
				break drain
			}
			last, got = s, true
		default:
			break drain
		}
	}
	if got {
		sh.renderListing(last)
	}
}

func (sh *shell) renderListing(s service.ListingState[model.Post]) {
	switch s.Status {
	case service.StatusFailed:
		sh.printf("posts: %s\n", service.UserMessage(s.Err))
		return
	case service.StatusLoaded:
	default:
		return
	}

	page := s.Page
	header := fmt.Sprintf("posts page %d/%d, %d total",
		pagination.DisplayPage(page.PageNumber), max(page.TotalPages, 1), page.TotalElements)
	if s.Query != "" {
		header += fmt.Sprintf(", search %q", s.Query)
	}
	sh.println(header)

	if len(page.Items) == 0 {
		sh.println("  no posts")
		return
	}

	tw := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	for _, row := range service.PostRows(page, sh.identity()) {
		_, _ = fmt.Fprintf(tw, "  %d\t#%d\t%s\t%s\t%s\t%s\n",
			row.Ordinal,
			row.Post.ID,
			row.Post.Title,
			row.Post.AuthorName,
			row.Post.CreatedAt.Format(timeLayout),
			affordances(row.Access),
		)
	}
	_ = tw.Flush()
}

func affordances(a access.Affordances) string {
	var out []string
	if a.CanEdit {
		out = append(out, "edit")
	}
	if a.CanDelete {
		out = append(out, "delete")
	}
	if len(out) == 0 {
		return ""
	}
	return "[" + strings.Join(out, " ") + "]"
}

func (sh *shell) renderDetail(d *service.Detail) {
	id := sh.identity()
	p := d.Post()

	secret := ""
	if p.Secret {
		secret = " (secret)"
	}
	sh.printf("#%d %s%s %s\n", p.ID, p.Title, secret, affordances(access.ForPost(id, &p)))
	sh.printf("by %s at %s\n\n%s\n", p.AuthorName, p.CreatedAt.Format(timeLayout), p.Body)

	if files := d.Attachments(); len(files) > 0 {
		sh.println("\nfiles:")
		for _, f := range files {
			sh.printf("  [%d] %s (%d bytes) %s\n", f.ID, f.FileName, f.Size, affordances(access.ForAttachment(id, f, &p)))
		}
	}

	comments := d.Comments()
	sh.printf("\ncomments (%d):\n", len(comments))
	for _, c := range comments {
		sh.printf("  [%d] %s: %s %s\n", c.ID, c.AuthorName, c.Body, affordances(access.ForComment(id, c, &p)))
	}
}

func (sh *shell) whoami() {
	id := sh.identity()
	if id == nil {
		sh.println("anonymous")
		return
	}
	sh.printf("%s (#%d, %s)\n", id.DisplayName, id.ID, strings.ToLower(string(id.Role)))
}

func (sh *shell) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("login EMAIL PASSWORD")
	}
	id, err := sh.app.Session.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	sh.printf("logged in as %s\n", id.DisplayName)
	return nil
}

func (sh *shell) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usage("register NAME EMAIL PASSWORD")
	}
	err := sh.app.Users.Register(ctx, service.RegisterRequest{
		Username: args[0],
		Email:    args[1],
		Password: args[2],
	})
	if err != nil {
		return err
	}
	sh.println("registered, you can log in now")
	return nil
}

func (sh *shell) profile(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("profile name NAME | profile password PASSWORD")
	}
	id := sh.identity()
	if id == nil {
		return service.ErrAuthenticationRequired
	}

	var patch service.ProfilePatch
	switch args[0] {
	case "name":
		patch.Username = &args[1]
	case "password":
		patch.Password = &args[1]
	default:
		return usage("profile name NAME | profile password PASSWORD")
	}

	u, err := sh.app.Users.UpdateProfile(ctx, id, id.ID, patch)
	if err != nil {
		return err
	}
	sh.printf("profile updated: %s\n", u.Username)
	return nil
}

func (sh *shell) page(ctx context.Context, args []string) error {
	n, err := intArg(args, "page N")
	if err != nil {
		return err
	}
	_, err = sh.app.Listing.SetPage(ctx, pagination.FromDisplayPage(int(n)))
	return err
}

func (sh *shell) size(ctx context.Context, args []string) error {
	n, err := intArg(args, "size N")
	if err != nil {
		return err
	}
	_, err = sh.app.Listing.SetPageSize(ctx, int(n))
	return err
}

func (sh *shell) show(ctx context.Context, args []string) error {
	postID, err := intArg(args, "show ID")
	if err != nil {
		return err
	}
	d, err := sh.app.Posts.OpenDetail(ctx, sh.identity(), postID)
	if err != nil {
		return err
	}
	sh.detail = d
	sh.renderDetail(d)
	return nil
}

func (sh *shell) post(ctx context.Context, rest string) error {
	parts := splitPipe(rest)
	if len(parts) < 2 {
		return usage("post [secret] TITLE | BODY [| FILE ...]")
	}

	draft := service.PostDraft{Title: parts[0], Body: parts[1]}
	if t, ok := strings.CutPrefix(draft.Title, "secret "); ok {
		draft.Title, draft.Secret = strings.TrimSpace(t), true
	}

	var paths []string
	if len(parts) > 2 {
		paths = strings.Fields(parts[2])
	}
	uploads, closeAll, err := openUploads(paths)
	if err != nil {
		return err
	}
	defer closeAll()

	p, err := sh.app.Posts.CreatePostWithAttachments(ctx, sh.app.Listing, sh.identity(), draft, uploads)
	var partial *service.PartialUploadError
	if err != nil && !errors.As(err, &partial) {
		return err
	}
	sh.printf("created post #%d\n", p.ID)
	return err
}

func (sh *shell) edit(ctx context.Context, args []string, rest string) error {
	if len(args) < 1 {
		return usage("edit ID TITLE | BODY")
	}
	postID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return usage("edit ID TITLE | BODY")
	}
	parts := splitPipe(strings.TrimSpace(strings.TrimPrefix(rest, args[0])))
	if len(parts) != 2 {
		return usage("edit ID TITLE | BODY")
	}
	return sh.update(ctx, postID, service.PostPatch{Title: &parts[0], Body: &parts[1]})
}

func (sh *shell) secret(ctx context.Context, args []string) error {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		return usage("secret ID on|off")
	}
	postID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return usage("secret ID on|off")
	}
	on := args[1] == "on"
	return sh.update(ctx, postID, service.PostPatch{Secret: &on})
}

func (sh *shell) update(ctx context.Context, postID int64, patch service.PostPatch) error {
	var (
		p   model.Post
		err error
	)
	if d := sh.openDetail(postID); d != nil {
		p, err = sh.app.Posts.UpdateDetailPost(ctx, sh.app.Listing, d, sh.identity(), patch)
	} else {
		p, err = sh.app.Posts.UpdatePost(ctx, sh.app.Listing, sh.identity(), postID, patch)
	}
	if err != nil {
		return err
	}
	sh.printf("updated post #%d\n", p.ID)
	return nil
}

func (sh *shell) delete(ctx context.Context, args []string) error {
	postID, err := intArg(args, "delete ID")
	if err != nil {
		return err
	}
	if d := sh.openDetail(postID); d != nil {
		err = sh.app.Posts.DeleteDetailPost(ctx, sh.app.Listing, d, sh.identity())
		if err == nil {
			sh.detail = nil
		}
	} else {
		err = sh.app.Posts.DeletePost(ctx, sh.app.Listing, sh.identity(), postID)
	}
	if err != nil {
		return err
	}
	sh.printf("deleted post #%d\n", postID)
	return nil
}

// openDetail returns the opened detail when it shows postID.
func (sh *shell) openDetail(postID int64) *service.Detail {
	if sh.detail == nil || sh.detail.Deleted() || sh.detail.Post().ID != postID {
		return nil
	}
	return sh.detail
}

func (sh *shell) currentDetail() (*service.Detail, error) {
	if sh.detail == nil || sh.detail.Deleted() {
		return nil, errNoDetail
	}
	return sh.detail, nil
}

func (sh *shell) comment(ctx context.Context, text string) error {
	d, err := sh.currentDetail()
	if err != nil {
		return err
	}
	c, err := sh.app.Comments.AddComment(ctx, d, sh.identity(), service.CommentDraft{Body: text})
	if err != nil {
		return err
	}
	sh.printf("added comment [%d]\n", c.ID)
	return nil
}

func (sh *shell) editComment(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("editcomment ID TEXT")
	}
	d, err := sh.currentDetail()
	if err != nil {
		return err
	}
	commentID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return usage("editcomment ID TEXT")
	}
	c, err := sh.app.Comments.EditComment(ctx, d, sh.identity(), commentID, service.CommentDraft{Body: strings.Join(args[1:], " ")})
	if err != nil {
		return err
	}
	sh.printf("edited comment [%d]\n", c.ID)
	return nil
}

func (sh *shell) uncomment(ctx context.Context, args []string) error {
	commentID, err := intArg(args, "uncomment ID")
	if err != nil {
		return err
	}
	d, err := sh.currentDetail()
	if err != nil {
		return err
	}
	if err := sh.app.Comments.DeleteComment(ctx, d, sh.identity(), commentID); err != nil {
		return err
	}
	sh.printf("deleted comment [%d]\n", commentID)
	return nil
}

func (sh *shell) attach(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("attach FILE")
	}
	d, err := sh.currentDetail()
	if err != nil {
		return err
	}
	uploads, closeAll, err := openUploads(args)
	if err != nil {
		return err
	}
	defer closeAll()

	a, err := sh.app.Files.Upload(ctx, d, sh.identity(), uploads[0])
	if err != nil {
		return err
	}
	sh.printf("attached [%d] %s\n", a.ID, a.FileName)
	return nil
}

func (sh *shell) download(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("download ID PATH")
	}
	d, err := sh.currentDetail()
	if err != nil {
		return err
	}
	fileID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return usage("download ID PATH")
	}

	rc, err := sh.app.Files.Download(ctx, d, sh.identity(), fileID)
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("create %s: %w", args[1], err)
	}
	n, err := io.Copy(f, rc)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", args[1], err)
	}
	sh.printf("saved %d bytes to %s\n", n, args[1])
	return nil
}

func (sh *shell) removeFile(ctx context.Context, args []string) error {
	fileID, err := intArg(args, "rmfile ID")
	if err != nil {
		return err
	}
	d, err := sh.currentDetail()
	if err != nil {
		return err
	}
	if err := sh.app.Files.Delete(ctx, d, sh.identity(), fileID); err != nil {
		return err
	}
	sh.printf("deleted file [%d]\n", fileID)
	return nil
}

func (sh *shell) users(ctx context.Context) error {
	users, err := sh.app.Users.ListUsers(ctx, sh.identity())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	for _, u := range users {
		_, _ = fmt.Fprintf(tw, "  #%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, strings.ToLower(string(u.Role)))
	}
	return tw.Flush()
}

func (sh *shell) rename(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("rename ID NAME")
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return usage("rename ID NAME")
	}
	u, err := sh.app.Users.RenameUser(ctx, sh.identity(), userID, args[1])
	if err != nil {
		return err
	}
	sh.printf("renamed #%d to %s\n", u.ID, u.Username)
	return nil
}

func (sh *shell) resetPassword(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("resetpw ID PASSWORD")
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return usage("resetpw ID PASSWORD")
	}
	if err := sh.app.Users.ResetPassword(ctx, sh.identity(), userID, args[1]); err != nil {
		return err
	}
	sh.printf("password of #%d reset\n", userID)
	return nil
}

func usage(s string) error {
	return fmt.Errorf("usage: %s: %w", s, service.ErrInvalidRequest)
}

func intArg(args []string, u string) (int64, error) {
	if len(args) != 1 {
		return 0, usage(u)
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, usage(u)
	}
	return n, nil
}

func splitPipe(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func openUploads(paths []string) ([]service.FileUpload, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	uploads := make([]service.FileUpload, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("open %s: %w", p, service.ErrInvalidRequest)
		}
		files = append(files, f)
		uploads = append(uploads, service.FileUpload{
			FileName:    filepath.Base(p),
			ContentType: mime.TypeByExtension(filepath.Ext(p)),
			Content:     f,
		})
	}
	return uploads, closeAll, nil
}

func (sh *shell) allPosts(ctx context.Context, args []string) error {
	n := int64(1)
	if len(args) > 0 {
		var err error
		if n, err = intArg(args, "allposts [N]"); err != nil {
			return err
		}
	}
	page, err := sh.app.Users.AllPosts(ctx, sh.identity(), pagination.PageRequest{
		Page: pagination.FromDisplayPage(int(n)),
		Size: sh.app.cfg.Listing.PageSize,
	})
	if err != nil {
		return err
	}

	sh.printf("all posts page %d/%d, %d total\n",
		pagination.DisplayPage(page.PageNumber), max(page.TotalPages, 1), page.TotalElements)
	tw := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	for _, p := range page.Items {
		secret := ""
		if p.Secret {
			secret = "secret"
		}
		_, _ = fmt.Fprintf(tw, "  #%d\t%s\t%s\t%s\n", p.ID, p.Title, p.AuthorName, secret)
	}
	return tw.Flush()
}

func (sh *shell) purge(ctx context.Context, args []string) error {
	postID, err := intArg(args, "purge ID")
	if err != nil {
		return err
	}
	if err := sh.app.Users.PurgePost(ctx, sh.app.Listing, sh.identity(), postID); err != nil {
		return err
	}
	if sh.openDetail(postID) != nil {
		sh.detail = nil
	}
	sh.printf("purged post #%d\n", postID)
	return nil
}
