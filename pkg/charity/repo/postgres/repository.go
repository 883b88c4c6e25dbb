package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alamana-org/charity-server/pkg/charity"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// TxStarter is implemented by pools and connections that can open transactions.
// The rank swap requires one; when the underlying DBTX cannot start a
// transaction (it already is one) the swap statements run on it directly.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository implements charity.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) charity.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) charity.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if pgErr.ConstraintName == "users_email_key" {
				return charity.ErrDuplicateEmail
			}
			return charity.ErrRangConflict
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Product operations

func (r *Repository) CreateProduct(ctx context.Context, product *charity.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, short_description, category,
			image_url, secondary_image_url, rang, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.ShortDescription,
		product.Category, product.ImageURL, product.SecondaryImageURL,
		product.Rang, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create product", err)
	}

	return nil
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*charity.Product, error) {
	query := `
		SELECT id, name, description, short_description, category,
		       image_url, secondary_image_url, rang, created_at, updated_at
		FROM products WHERE id = $1`

	var p charity.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.ShortDescription, &p.Category,
		&p.ImageURL, &p.SecondaryImageURL, &p.Rang, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, charity.ErrProductNotFound
		}
		return nil, r.handlePostgresError("get product", err)
	}

	return &p, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product *charity.Product) error {
	query := `
		UPDATE products SET
			name = $2, description = $3, short_description = $4, category = $5,
			image_url = $6, secondary_image_url = $7, updated_at = $8
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.ShortDescription,
		product.Category, product.ImageURL, product.SecondaryImageURL, product.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return charity.ErrProductNotFound
	}

	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return charity.ErrProductNotFound
	}

	return nil
}

func (r *Repository) ListProducts(ctx context.Context, filters charity.ProductFilters) ([]*charity.Product, error) {
	query := `
		SELECT id, name, description, short_description, category,
		       image_url, secondary_image_url, rang, created_at, updated_at
		FROM products`
	var args []interface{}
	if filters.Category != nil {
		query += ` WHERE lower(category) = lower($1)`
		args = append(args, *filters.Category)
	}
	query += ` ORDER BY rang ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list products", err)
	}
	defer rows.Close()

	var products []*charity.Product
	for rows.Next() {
		var p charity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.ShortDescription, &p.Category,
			&p.ImageURL, &p.SecondaryImageURL, &p.Rang, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, r.handlePostgresError("scan product", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate product rows", err)
	}

	return products, nil
}

func (r *Repository) HighestProductRang(ctx context.Context) (int, error) {
	var highest int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(rang), -1) FROM products`).Scan(&highest)
	if err != nil {
		return 0, r.handlePostgresError("highest product rang", err)
	}
	return highest, nil
}

func (r *Repository) SwapProductRangs(ctx context.Context, currentID, targetID uuid.UUID) (*charity.Product, *charity.Product, error) {
	var current, target *charity.Product
	err := r.withTx(ctx, func(tx DBTX) error {
		currentRang, targetRang, err := r.lockRangPair(ctx, tx, "products", currentID, targetID, charity.ErrProductNotFound)
		if err != nil {
			return err
		}

		// Park the moving row on a sentinel rank so the unique index never
		// sees both rows on the same value mid-swap.
		if _, err := tx.Exec(ctx, `UPDATE products SET rang = -1, updated_at = NOW() WHERE id = $1`, currentID); err != nil {
			return r.handlePostgresError("swap product rang", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE products SET rang = $2, updated_at = NOW() WHERE id = $1`, targetID, currentRang); err != nil {
			return r.handlePostgresError("swap product rang", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE products SET rang = $2, updated_at = NOW() WHERE id = $1`, currentID, targetRang); err != nil {
			return r.handlePostgresError("swap product rang", err)
		}

		current = &charity.Product{ID: currentID, Rang: targetRang}
		target = &charity.Product{ID: targetID, Rang: currentRang}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return current, target, nil
}

// Content post operations

func (r *Repository) CreateContentPost(ctx context.Context, post *charity.ContentPost) error {
	query := `
		INSERT INTO content_posts (
			id, title, category, description, short_description, date,
			image_url, secondary_image_url, video_url, rang, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Category, post.Description, post.ShortDescription,
		post.Date, post.ImageURL, post.SecondaryImageURL, post.VideoURL,
		post.Rang, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create content post", err)
	}

	return nil
}

func (r *Repository) GetContentPost(ctx context.Context, id uuid.UUID) (*charity.ContentPost, error) {
	query := `
		SELECT id, title, category, description, short_description, date,
		       image_url, secondary_image_url, video_url, rang, created_at, updated_at
		FROM content_posts WHERE id = $1`

	var p charity.ContentPost
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Category, &p.Description, &p.ShortDescription, &p.Date,
		&p.ImageURL, &p.SecondaryImageURL, &p.VideoURL, &p.Rang, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, charity.ErrContentPostNotFound
		}
		return nil, r.handlePostgresError("get content post", err)
	}

	return &p, nil
}

func (r *Repository) UpdateContentPost(ctx context.Context, post *charity.ContentPost) error {
	query := `
		UPDATE content_posts SET
			title = $2, category = $3, description = $4, short_description = $5,
			date = $6, image_url = $7, secondary_image_url = $8, video_url = $9,
			updated_at = $10
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Category, post.Description, post.ShortDescription,
		post.Date, post.ImageURL, post.SecondaryImageURL, post.VideoURL, post.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update content post", err)
	}
	if tag.RowsAffected() == 0 {
		return charity.ErrContentPostNotFound
	}

	return nil
}

func (r *Repository) DeleteContentPost(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM content_posts WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete content post", err)
	}
	if tag.RowsAffected() == 0 {
		return charity.ErrContentPostNotFound
	}

	return nil
}

func (r *Repository) ListContentPosts(ctx context.Context, filters charity.ContentPostFilters) ([]*charity.ContentPost, error) {
	query := `
		SELECT id, title, category, description, short_description, date,
		       image_url, secondary_image_url, video_url, rang, created_at, updated_at
		FROM content_posts ORDER BY rang DESC`
	var args []interface{}
	if filters.Limit != nil {
		query += ` LIMIT $1`
		args = append(args, *filters.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list content posts", err)
	}
	defer rows.Close()

	var posts []*charity.ContentPost
	for rows.Next() {
		var p charity.ContentPost
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Category, &p.Description, &p.ShortDescription, &p.Date,
			&p.ImageURL, &p.SecondaryImageURL, &p.VideoURL, &p.Rang, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, r.handlePostgresError("scan content post", err)
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate content post rows", err)
	}

	return posts, nil
}

func (r *Repository) HighestContentPostRang(ctx context.Context) (int, error) {
	var highest int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(rang), -1) FROM content_posts`).Scan(&highest)
	if err != nil {
		return 0, r.handlePostgresError("highest content post rang", err)
	}
	return highest, nil
}

func (r *Repository) SwapContentPostRangs(ctx context.Context, currentID, targetID uuid.UUID) (*charity.ContentPost, *charity.ContentPost, error) {
	var current, target *charity.ContentPost
	err := r.withTx(ctx, func(tx DBTX) error {
		currentRang, targetRang, err := r.lockRangPair(ctx, tx, "content_posts", currentID, targetID, charity.ErrContentPostNotFound)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `UPDATE content_posts SET rang = -1, updated_at = NOW() WHERE id = $1`, currentID); err != nil {
			return r.handlePostgresError("swap content post rang", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE content_posts SET rang = $2, updated_at = NOW() WHERE id = $1`, targetID, currentRang); err != nil {
			return r.handlePostgresError("swap content post rang", err)
		}
		if _, err := tx.Exec(ctx, `UPDATE content_posts SET rang = $2, updated_at = NOW() WHERE id = $1`, currentID, targetRang); err != nil {
			return r.handlePostgresError("swap content post rang", err)
		}

		current = &charity.ContentPost{ID: currentID, Rang: targetRang}
		target = &charity.ContentPost{ID: targetID, Rang: currentRang}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return current, target, nil
}

// withTx runs fn inside a transaction when the underlying DBTX can start one,
// otherwise directly against the DBTX (assumed to already be transactional).
func (r *Repository) withTx(ctx context.Context, fn func(tx DBTX) error) error {
	starter, ok := r.db.(TxStarter)
	if !ok {
		return fn(r.db)
	}

	tx, err := starter.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// lockRangPair reads and row-locks the rang of two rows in a stable order.
func (r *Repository) lockRangPair(ctx context.Context, tx DBTX, table string, currentID, targetID uuid.UUID, notFound error) (int, int, error) {
	query := fmt.Sprintf(`SELECT id, rang FROM %s WHERE id = ANY($1) ORDER BY id FOR UPDATE`, table)

	rows, err := tx.Query(ctx, query, []uuid.UUID{currentID, targetID})
	if err != nil {
		return 0, 0, r.handlePostgresError("lock rang pair", err)
	}
	defer rows.Close()

	rangs := make(map[uuid.UUID]int, 2)
	for rows.Next() {
		var id uuid.UUID
		var rang int
		if err := rows.Scan(&id, &rang); err != nil {
			return 0, 0, r.handlePostgresError("scan rang pair", err)
		}
		rangs[id] = rang
	}
	if err := rows.Err(); err != nil {
		return 0, 0, r.handlePostgresError("iterate rang pair", err)
	}

	currentRang, ok := rangs[currentID]
	if !ok {
		return 0, 0, notFound
	}
	targetRang, ok := rangs[targetID]
	if !ok {
		return 0, 0, notFound
	}
	return currentRang, targetRang, nil
}

// Carousel operations

func (r *Repository) CreateCarouselImage(ctx context.Context, image *charity.CarouselImage) error {
	query := `
		INSERT INTO carousel_images (id, image_url, object_key, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		image.ID, image.ImageURL, image.ObjectKey, image.Order, image.CreatedAt, image.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create carousel image", err)
	}

	return nil
}

func (r *Repository) GetCarouselImage(ctx context.Context, id uuid.UUID) (*charity.CarouselImage, error) {
	query := `
		SELECT id, image_url, object_key, position, created_at, updated_at
		FROM carousel_images WHERE id = $1`

	var img charity.CarouselImage
	err := r.db.QueryRow(ctx, query, id).Scan(
		&img.ID, &img.ImageURL, &img.ObjectKey, &img.Order, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, charity.ErrCarouselImageNotFound
		}
		return nil, r.handlePostgresError("get carousel image", err)
	}

	return &img, nil
}

func (r *Repository) ListCarouselImages(ctx context.Context) ([]*charity.CarouselImage, error) {
	query := `
		SELECT id, image_url, object_key, position, created_at, updated_at
		FROM carousel_images ORDER BY position ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list carousel images", err)
	}
	defer rows.Close()

	var images []*charity.CarouselImage
	for rows.Next() {
		var img charity.CarouselImage
		if err := rows.Scan(
			&img.ID, &img.ImageURL, &img.ObjectKey, &img.Order, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, r.handlePostgresError("scan carousel image", err)
		}
		images = append(images, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate carousel image rows", err)
	}

	return images, nil
}

func (r *Repository) DeleteCarouselImage(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM carousel_images WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete carousel image", err)
	}
	if tag.RowsAffected() == 0 {
		return charity.ErrCarouselImageNotFound
	}

	return nil
}

func (r *Repository) HighestCarouselOrder(ctx context.Context) (int, error) {
	var highest int
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(position), 0) FROM carousel_images`).Scan(&highest)
	if err != nil {
		return 0, r.handlePostgresError("highest carousel order", err)
	}
	return highest, nil
}

func (r *Repository) SetCarouselImageOrder(ctx context.Context, id uuid.UUID, order int) (*charity.CarouselImage, error) {
	var updated *charity.CarouselImage
	err := r.withTx(ctx, func(tx DBTX) error {
		var currentOrder int
		err := tx.QueryRow(ctx, `SELECT position FROM carousel_images WHERE id = $1 FOR UPDATE`, id).Scan(&currentOrder)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return charity.ErrCarouselImageNotFound
			}
			return r.handlePostgresError("set carousel order", err)
		}

		if currentOrder == order {
			return nil
		}

		if _, err := tx.Exec(ctx, `UPDATE carousel_images SET position = -1, updated_at = NOW() WHERE id = $1`, id); err != nil {
			return r.handlePostgresError("set carousel order", err)
		}
		// Whichever slide held the requested position takes the vacated one.
		if _, err := tx.Exec(ctx,
			`UPDATE carousel_images SET position = $2, updated_at = NOW() WHERE position = $1`,
			order, currentOrder); err != nil {
			return r.handlePostgresError("set carousel order", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE carousel_images SET position = $2, updated_at = NOW() WHERE id = $1`,
			id, order); err != nil {
			return r.handlePostgresError("set carousel order", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err = r.GetCarouselImage(ctx, id)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Page content operations

func (r *Repository) GetPageContent(ctx context.Context, pageName string) (*charity.PageContent, error) {
	query := `
		SELECT id, page_name, content, created_at, updated_at
		FROM page_contents WHERE page_name = $1`

	var page charity.PageContent
	err := r.db.QueryRow(ctx, query, pageName).Scan(
		&page.ID, &page.PageName, &page.Content, &page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, charity.ErrPageContentNotFound
		}
		return nil, r.handlePostgresError("get page content", err)
	}

	docs, err := r.ListPageDocuments(ctx, page.ID)
	if err != nil {
		return nil, err
	}
	page.Documents = docs

	return &page, nil
}

func (r *Repository) SavePageContent(ctx context.Context, pageName, content string) (*charity.PageContent, error) {
	query := `
		INSERT INTO page_contents (id, page_name, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (page_name)
		DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()
		RETURNING id, page_name, content, created_at, updated_at`

	var page charity.PageContent
	err := r.db.QueryRow(ctx, query, uuid.New(), pageName, content).Scan(
		&page.ID, &page.PageName, &page.Content, &page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		return nil, r.handlePostgresError("save page content", err)
	}

	docs, err := r.ListPageDocuments(ctx, page.ID)
	if err != nil {
		return nil, err
	}
	page.Documents = docs

	return &page, nil
}

func (r *Repository) EnsurePageContent(ctx context.Context, pageName string) (*charity.PageContent, error) {
	query := `
		INSERT INTO page_contents (id, page_name, content, created_at, updated_at)
		VALUES ($1, $2, '', NOW(), NOW())
		ON CONFLICT (page_name) DO UPDATE SET page_name = EXCLUDED.page_name
		RETURNING id, page_name, content, created_at, updated_at`

	var page charity.PageContent
	err := r.db.QueryRow(ctx, query, uuid.New(), pageName).Scan(
		&page.ID, &page.PageName, &page.Content, &page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		return nil, r.handlePostgresError("ensure page content", err)
	}

	return &page, nil
}

func (r *Repository) CreatePageDocument(ctx context.Context, doc *charity.PageDocument) error {
	query := `
		INSERT INTO page_documents (id, page_content_id, title, url, object_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		doc.ID, doc.PageContentID, doc.Title, doc.URL, doc.ObjectKey, doc.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create page document", err)
	}

	return nil
}

func (r *Repository) GetPageDocument(ctx context.Context, id uuid.UUID) (*charity.PageDocument, error) {
	query := `
		SELECT id, page_content_id, title, url, object_key, created_at
		FROM page_documents WHERE id = $1`

	var doc charity.PageDocument
	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID, &doc.PageContentID, &doc.Title, &doc.URL, &doc.ObjectKey, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, charity.ErrPageDocumentNotFound
		}
		return nil, r.handlePostgresError("get page document", err)
	}

	return &doc, nil
}

func (r *Repository) ListPageDocuments(ctx context.Context, pageContentID uuid.UUID) ([]*charity.PageDocument, error) {
	query := `
		SELECT id, page_content_id, title, url, object_key, created_at
		FROM page_documents WHERE page_content_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, pageContentID)
	if err != nil {
		return nil, r.handlePostgresError("list page documents", err)
	}
	defer rows.Close()

	var docs []*charity.PageDocument
	for rows.Next() {
		var doc charity.PageDocument
		if err := rows.Scan(
			&doc.ID, &doc.PageContentID, &doc.Title, &doc.URL, &doc.ObjectKey, &doc.CreatedAt); err != nil {
			return nil, r.handlePostgresError("scan page document", err)
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate page document rows", err)
	}

	return docs, nil
}

func (r *Repository) DeletePageDocument(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM page_documents WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete page document", err)
	}
	if tag.RowsAffected() == 0 {
		return charity.ErrPageDocumentNotFound
	}

	return nil
}

// Form submissions

func (r *Repository) CreateContactMessage(ctx context.Context, msg *charity.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, msg.ID, msg.Name, msg.Email, msg.Message, msg.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create contact message", err)
	}

	return nil
}

func (r *Repository) ListContactMessages(ctx context.Context) ([]*charity.ContactMessage, error) {
	query := `
		SELECT id, name, email, message, created_at
		FROM contact_messages ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list contact messages", err)
	}
	defer rows.Close()

	var msgs []*charity.ContactMessage
	for rows.Next() {
		var m charity.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, r.handlePostgresError("scan contact message", err)
		}
		msgs = append(msgs, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate contact message rows", err)
	}

	return msgs, nil
}

func (r *Repository) CreateVolunteerApplication(ctx context.Context, app *charity.VolunteerApplication) error {
	query := `
		INSERT INTO volunteer_applications (
			id, full_name, age_category, gender, phone, email,
			education_level, previous_experience, organization_name,
			interest_areas, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		app.ID, app.FullName, app.AgeCategory, app.Gender, app.Phone, app.Email,
		app.EducationLevel, app.PreviousExperience, app.OrganizationName,
		app.InterestAreas, app.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create volunteer application", err)
	}

	return nil
}

func (r *Repository) ListVolunteerApplications(ctx context.Context) ([]*charity.VolunteerApplication, error) {
	query := `
		SELECT id, full_name, age_category, gender, phone, email,
		       education_level, previous_experience, organization_name,
		       interest_areas, created_at
		FROM volunteer_applications ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list volunteer applications", err)
	}
	defer rows.Close()

	var apps []*charity.VolunteerApplication
	for rows.Next() {
		var a charity.VolunteerApplication
		if err := rows.Scan(
			&a.ID, &a.FullName, &a.AgeCategory, &a.Gender, &a.Phone, &a.Email,
			&a.EducationLevel, &a.PreviousExperience, &a.OrganizationName,
			&a.InterestAreas, &a.CreatedAt); err != nil {
			return nil, r.handlePostgresError("scan volunteer application", err)
		}
		apps = append(apps, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate volunteer application rows", err)
	}

	return apps, nil
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *charity.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, role, created_at)
		VALUES ($1, lower($2), $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create user", err)
	}

	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*charity.User, error) {
	query := `
		SELECT id, email, name, password_hash, role, created_at
		FROM users WHERE email = lower($1)`

	var u charity.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, charity.ErrUserNotFound
		}
		return nil, r.handlePostgresError("get user by email", err)
	}

	return &u, nil
}
