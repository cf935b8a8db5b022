package tableinfo

const (
	PostsTableName = "posts"

	PostIDColumn        = "id"
	PostTitleColumn     = "title"
	PostContentColumn   = "content"
	PostUserIDColumn    = "user_id"
	PostSecretColumn    = "is_secret"
	PostCreatedAtColumn = "created_at"
	PostUpdatedAtColumn = "updated_at"
)

const (
	CommentsTableName = "comments"

	CommentIDColumn        = "id"
	CommentPostIDColumn    = "post_id"
	CommentUserIDColumn    = "user_id"
	CommentContentColumn   = "content"
	CommentCreatedAtColumn = "created_at"
	CommentUpdatedAtColumn = "updated_at"
)

const (
	UsersTableName = "users"

	UserIDColumn       = "id"
	UserUsernameColumn = "username"
	UserEmailColumn    = "email"
	UserRoleColumn     = "role"
)

const (
	FilesTableName = "files"

	FileIDColumn     = "id"
	FilePostIDColumn = "post_id"
)

// Qualified returns table.column for use in joins.
func Qualified(table, column string) string {
	return table + "." + column
}
