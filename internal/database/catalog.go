package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"huonganh/internal/models"
)

// Catalog tables (services, gallery_images, about_sections) share the same
// CRUD shape and the dense sort_order contract. Per-table methods below keep
// the column differences explicit rather than hiding them behind reflection.

// OrderUpdate is one {id, order} pair of a bulk reorder write.
type OrderUpdate struct {
	ID        int64
	SortOrder int
}

func (db *DB) reorderTable(ctx context.Context, table string, updates []OrderUpdate) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reorder tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf(`UPDATE %s SET sort_order = ?, updated_at = ? WHERE id = ?`, table))
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, u := range updates {
		if _, err := stmt.ExecContext(ctx, u.SortOrder, now, u.ID); err != nil {
			return fmt.Errorf("reorder %s id %d: %w", table, u.ID, err)
		}
	}
	return tx.Commit()
}

func (db *DB) ReorderServices(ctx context.Context, updates []OrderUpdate) error {
	return db.reorderTable(ctx, "services", updates)
}

func (db *DB) ReorderGalleryImages(ctx context.Context, updates []OrderUpdate) error {
	return db.reorderTable(ctx, "gallery_images", updates)
}

func (db *DB) ReorderAboutSections(ctx context.Context, updates []OrderUpdate) error {
	return db.reorderTable(ctx, "about_sections", updates)
}

func (db *DB) countRows(ctx context.Context, table string) (int, error) {
	var n int
	err := db.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&n)
	return n, err
}

// --- services ---

func (db *DB) ListServices(ctx context.Context) ([]models.Service, error) {
	rows, err := db.db.QueryContext(ctx, `
        SELECT id, title, COALESCE(description, ''), COALESCE(price, ''), sort_order, created_at, updated_at
        FROM services ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Price, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// CreateService appends the record at the end of the current order.
func (db *DB) CreateService(ctx context.Context, svc *models.Service) error {
	count, err := db.countRows(ctx, "services")
	if err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	svc.SortOrder = count

	now := time.Now()
	result, err := db.db.ExecContext(ctx, `
        INSERT INTO services (title, description, price, sort_order, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		svc.Title, svc.Description, svc.Price, svc.SortOrder, now, now)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	svc.ID, err = result.LastInsertId()
	return err
}

func (db *DB) UpdateService(ctx context.Context, svc *models.Service) error {
	result, err := db.db.ExecContext(ctx, `
        UPDATE services SET title = ?, description = ?, price = ?, updated_at = ? WHERE id = ?`,
		svc.Title, svc.Description, svc.Price, time.Now(), svc.ID)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return checkAffected(result)
}

func (db *DB) DeleteService(ctx context.Context, id int64) error {
	result, err := db.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return checkAffected(result)
}

// --- gallery images ---

func (db *DB) ListGalleryImages(ctx context.Context) ([]models.GalleryImage, error) {
	rows, err := db.db.QueryContext(ctx, `
        SELECT id, title, image_url, sort_order, created_at, updated_at
        FROM gallery_images ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	defer rows.Close()

	var images []models.GalleryImage
	for rows.Next() {
		var img models.GalleryImage
		if err := rows.Scan(&img.ID, &img.Title, &img.ImageURL, &img.SortOrder, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan gallery image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (db *DB) CreateGalleryImage(ctx context.Context, img *models.GalleryImage) error {
	count, err := db.countRows(ctx, "gallery_images")
	if err != nil {
		return fmt.Errorf("count gallery images: %w", err)
	}
	img.SortOrder = count

	now := time.Now()
	result, err := db.db.ExecContext(ctx, `
        INSERT INTO gallery_images (title, image_url, sort_order, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)`,
		img.Title, img.ImageURL, img.SortOrder, now, now)
	if err != nil {
		return fmt.Errorf("create gallery image: %w", err)
	}
	img.ID, err = result.LastInsertId()
	return err
}

func (db *DB) UpdateGalleryImage(ctx context.Context, img *models.GalleryImage) error {
	result, err := db.db.ExecContext(ctx, `
        UPDATE gallery_images SET title = ?, image_url = ?, updated_at = ? WHERE id = ?`,
		img.Title, img.ImageURL, time.Now(), img.ID)
	if err != nil {
		return fmt.Errorf("update gallery image: %w", err)
	}
	return checkAffected(result)
}

func (db *DB) DeleteGalleryImage(ctx context.Context, id int64) error {
	result, err := db.db.ExecContext(ctx, `DELETE FROM gallery_images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete gallery image: %w", err)
	}
	return checkAffected(result)
}

// --- about sections ---

func (db *DB) ListAboutSections(ctx context.Context) ([]models.AboutSection, error) {
	rows, err := db.db.QueryContext(ctx, `
        SELECT id, title, content, sort_order, created_at, updated_at
        FROM about_sections ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("list about sections: %w", err)
	}
	defer rows.Close()

	var sections []models.AboutSection
	for rows.Next() {
		var s models.AboutSection
		if err := rows.Scan(&s.ID, &s.Title, &s.Content, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan about section: %w", err)
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

func (db *DB) CreateAboutSection(ctx context.Context, section *models.AboutSection) error {
	count, err := db.countRows(ctx, "about_sections")
	if err != nil {
		return fmt.Errorf("count about sections: %w", err)
	}
	section.SortOrder = count

	now := time.Now()
	result, err := db.db.ExecContext(ctx, `
        INSERT INTO about_sections (title, content, sort_order, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)`,
		section.Title, section.Content, section.SortOrder, now, now)
	if err != nil {
		return fmt.Errorf("create about section: %w", err)
	}
	section.ID, err = result.LastInsertId()
	return err
}

func (db *DB) UpdateAboutSection(ctx context.Context, section *models.AboutSection) error {
	result, err := db.db.ExecContext(ctx, `
        UPDATE about_sections SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		section.Title, section.Content, time.Now(), section.ID)
	if err != nil {
		return fmt.Errorf("update about section: %w", err)
	}
	return checkAffected(result)
}

func (db *DB) DeleteAboutSection(ctx context.Context, id int64) error {
	result, err := db.db.ExecContext(ctx, `DELETE FROM about_sections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete about section: %w", err)
	}
	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
