package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order; every statement is idempotent. Unique keys
// are what keep get-or-create flows from producing duplicates.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(254) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role ENUM('CANDIDATE','CONSULTANT','ADMIN') NOT NULL DEFAULT 'CANDIDATE',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_hash (token_hash),
		CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS candidate_profiles (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		first_name VARCHAR(100) NOT NULL DEFAULT '',
		last_name VARCHAR(100) NOT NULL DEFAULT '',
		phone VARCHAR(15) NOT NULL DEFAULT '',
		location VARCHAR(100) NOT NULL DEFAULT '',
		experience_years DECIMAL(4,1) NULL,
		skills TEXT NOT NULL,
		resume VARCHAR(255) NOT NULL DEFAULT '',
		profile_image VARCHAR(255) NOT NULL DEFAULT '',
		bio TEXT NOT NULL,
		linkedin VARCHAR(255) NOT NULL DEFAULT '',
		github VARCHAR(255) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_candidate_user (user_id),
		CONSTRAINT fk_candidate_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS consultant_profiles (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		first_name VARCHAR(100) NOT NULL DEFAULT '',
		last_name VARCHAR(100) NOT NULL DEFAULT '',
		phone VARCHAR(20) NOT NULL DEFAULT '',
		company VARCHAR(150) NOT NULL DEFAULT '',
		designation VARCHAR(100) NOT NULL DEFAULT '',
		profile_image VARCHAR(255) NOT NULL DEFAULT '',
		bio TEXT NOT NULL,
		linkedin VARCHAR(255) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_consultant_user (user_id),
		CONSTRAINT fk_consultant_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		consultant_id BIGINT UNSIGNED NOT NULL,
		title VARCHAR(200) NOT NULL,
		company VARCHAR(150) NOT NULL,
		location VARCHAR(150) NOT NULL,
		experience INT UNSIGNED NOT NULL,
		job_type ENUM('FT','PT','RM') NOT NULL,
		domain VARCHAR(150) NOT NULL,
		skills TEXT NOT NULL,
		description TEXT NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		posted_on DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_jobs_active_posted (is_active, posted_on),
		CONSTRAINT fk_jobs_consultant FOREIGN KEY (consultant_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS saved_jobs (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		job_id BIGINT UNSIGNED NOT NULL,
		saved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_saved_user_job (user_id, job_id),
		CONSTRAINT fk_saved_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_saved_job FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS applications (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		job_id BIGINT UNSIGNED NOT NULL,
		resume VARCHAR(255) NOT NULL,
		cover_letter TEXT NOT NULL,
		status ENUM('PENDING','SHORTLISTED','REJECTED') NOT NULL DEFAULT 'PENDING',
		meeting_status ENUM('NOT_SCHEDULED','SCHEDULED','POSTPONED','CANCELLED','COMPLETED') NOT NULL DEFAULT 'NOT_SCHEDULED',
		meeting_datetime DATETIME NULL,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_app_user_job (user_id, job_id),
		CONSTRAINT fk_app_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_app_job FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS job_queries (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		job_id BIGINT UNSIGNED NOT NULL,
		user_id BIGINT UNSIGNED NOT NULL,
		question TEXT NOT NULL,
		is_resolved TINYINT(1) NOT NULL DEFAULT 0,
		created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		KEY idx_queries_job (job_id, created_at),
		CONSTRAINT fk_query_job FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE,
		CONSTRAINT fk_query_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS job_query_replies (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		query_id BIGINT UNSIGNED NOT NULL,
		user_id BIGINT UNSIGNED NOT NULL,
		message TEXT NOT NULL,
		created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		KEY idx_replies_query (query_id, created_at),
		CONSTRAINT fk_reply_query FOREIGN KEY (query_id) REFERENCES job_queries(id) ON DELETE CASCADE,
		CONSTRAINT fk_reply_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS subscriptions (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		plan ENUM('FREE','PRO') NOT NULL DEFAULT 'FREE',
		start_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		end_date DATETIME NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_subscription_user (user_id),
		CONSTRAINT fk_subscription_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS payment_transactions (
		id CHAR(36) PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		plan ENUM('FREE','PRO') NOT NULL,
		amount_cents BIGINT NOT NULL,
		status ENUM('PENDING','CONFIRMED') NOT NULL DEFAULT 'PENDING',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		confirmed_at DATETIME NULL,
		KEY idx_payment_user (user_id),
		CONSTRAINT fk_payment_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS courses (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		description TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS enrollments (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		candidate_id BIGINT UNSIGNED NOT NULL,
		course_id BIGINT UNSIGNED NOT NULL,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		progress TINYINT UNSIGNED NOT NULL DEFAULT 0,
		completed TINYINT(1) NOT NULL DEFAULT 0,
		certificate VARCHAR(255) NOT NULL DEFAULT '',
		UNIQUE KEY uq_enrollment (candidate_id, course_id),
		CONSTRAINT fk_enroll_candidate FOREIGN KEY (candidate_id) REFERENCES candidate_profiles(id) ON DELETE CASCADE,
		CONSTRAINT fk_enroll_course FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS chatbot_faqs (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		question VARCHAR(255) NOT NULL,
		answer TEXT NOT NULL,
		keywords TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates any missing tables.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
