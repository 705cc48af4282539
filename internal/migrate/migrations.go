package migrate

import "gorm.io/gorm"

func init() {
	Register(Migration{
		ID:   "20240305-091200",
		Name: "create core schema",
		Steps: []Step{
			CreateEnum("user_role",
				"super_admin", "company_admin", "project_manager",
				"site_supervisor", "foreman", "worker", "subcontractor"),
			CreateEnum("site_status", "planning", "active", "on_hold", "completed"),
			CreateEnum("job_status", "pending", "in_progress", "on_hold", "completed", "cancelled"),
			CreateEnum("priority_level", "low", "medium", "high", "urgent"),
			// 参照される側（companies, users, sites）を参照する側（jobs）より先に作成する。
			// ロールバックは逆順になる。
			CreateTable("companies", `
				CREATE TABLE companies (
					id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					name varchar(255) NOT NULL,
					address text,
					phone varchar(32),
					created_at timestamptz NOT NULL DEFAULT now(),
					updated_at timestamptz NOT NULL DEFAULT now(),
					deleted_at timestamptz
				)`),
			CreateTable("users", `
				CREATE TABLE users (
					id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					company_id uuid NOT NULL REFERENCES companies(id),
					name varchar(255) NOT NULL,
					email varchar(255) NOT NULL UNIQUE,
					phone varchar(32),
					role user_role NOT NULL,
					created_at timestamptz NOT NULL DEFAULT now(),
					updated_at timestamptz NOT NULL DEFAULT now(),
					deleted_at timestamptz
				)`),
			CreateTable("sites", `
				CREATE TABLE sites (
					id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					company_id uuid NOT NULL REFERENCES companies(id),
					name varchar(255) NOT NULL,
					address text,
					status site_status NOT NULL DEFAULT 'planning',
					start_date date,
					end_date date,
					created_at timestamptz NOT NULL DEFAULT now(),
					updated_at timestamptz NOT NULL DEFAULT now(),
					deleted_at timestamptz
				)`),
			CreateTable("jobs", `
				CREATE TABLE jobs (
					id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					company_id uuid NOT NULL REFERENCES companies(id),
					site_id uuid NOT NULL REFERENCES sites(id),
					assigned_to uuid REFERENCES users(id),
					title varchar(255) NOT NULL,
					description text,
					status job_status NOT NULL DEFAULT 'pending',
					priority priority_level NOT NULL DEFAULT 'medium',
					start_date date,
					due_date date,
					created_at timestamptz NOT NULL DEFAULT now(),
					updated_at timestamptz NOT NULL DEFAULT now(),
					deleted_at timestamptz
				)`),
			CreateIndex("users", "idx_users_company_id",
				"CREATE INDEX idx_users_company_id ON users (company_id)"),
			CreateIndex("sites", "idx_sites_company_id",
				"CREATE INDEX idx_sites_company_id ON sites (company_id)"),
			CreateIndex("jobs", "idx_jobs_company_id",
				"CREATE INDEX idx_jobs_company_id ON jobs (company_id)"),
			CreateIndex("jobs", "idx_jobs_site_id",
				"CREATE INDEX idx_jobs_site_id ON jobs (site_id)"),
		},
	})

	Register(Migration{
		ID:   "20240418-140031",
		Name: "create subcontractor contracts and variations",
		Steps: []Step{
			CreateEnum("contract_status", "draft", "active", "completed", "terminated"),
			CreateEnum("payment_method", "bank_transfer", "cheque", "cash", "card"),
			CreateEnum("variation_status", "proposed", "approved", "rejected", "completed"),
			CreateTable("subcontractors", `
				CREATE TABLE subcontractors (
					id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					company_id uuid NOT NULL REFERENCES companies(id),
					name varchar(255) NOT NULL,
					trade varchar(128),
					email varchar(255),
					phone varchar(32),
					created_at timestamptz NOT NULL DEFAULT now(),
					updated_at timestamptz NOT NULL DEFAULT now(),
					deleted_at timestamptz
				)`),
			CreateTable("contracts", `
				CREATE TABLE contracts (
					id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					company_id uuid NOT NULL REFERENCES companies(id),
					subcontractor_id uuid NOT NULL REFERENCES subcontractors(id),
					site_id uuid NOT NULL REFERENCES sites(id),
					title varchar(255) NOT NULL,
					amount numeric(14,2) NOT NULL DEFAULT 0,
					status contract_status NOT NULL DEFAULT 'draft',
					payment_method payment_method NOT NULL DEFAULT 'bank_transfer',
					start_date date,
					end_date date,
					created_at timestamptz NOT NULL DEFAULT now(),
					updated_at timestamptz NOT NULL DEFAULT now(),
					deleted_at timestamptz
				)`),
			CreateTable("variations", `
				CREATE TABLE variations (
					id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
					company_id uuid NOT NULL REFERENCES companies(id),
					site_id uuid NOT NULL REFERENCES sites(id),
					job_id uuid REFERENCES jobs(id),
					title varchar(255) NOT NULL,
					description text,
					status variation_status NOT NULL DEFAULT 'proposed',
					cost_change numeric(14,2) NOT NULL DEFAULT 0,
					created_at timestamptz NOT NULL DEFAULT now(),
					updated_at timestamptz NOT NULL DEFAULT now(),
					deleted_at timestamptz
				)`),
			CreateIndex("contracts", "idx_contracts_company_id",
				"CREATE INDEX idx_contracts_company_id ON contracts (company_id)"),
			CreateIndex("variations", "idx_variations_company_id",
				"CREATE INDEX idx_variations_company_id ON variations (company_id)"),
			CreateIndex("variations", "idx_variations_site_id",
				"CREATE INDEX idx_variations_site_id ON variations (site_id)"),
		},
	})

	// created_byの導出ルール: 同じ会社の最古のcompany_adminユーザー。
	// 導出できない行（会社に管理者がいない孤児行）は削除されるため、Destructiveとする。
	Register(Migration{
		ID:          "20240607-083000",
		Name:        "add created_by to jobs",
		Destructive: true,
		Steps: []Step{
			RequiredColumn{
				Table:      "jobs",
				Column:     "created_by",
				Definition: "uuid REFERENCES users(id)",
				Backfill: `
					UPDATE jobs SET created_by = (
						SELECT u.id FROM users u
						WHERE u.company_id = jobs.company_id
						  AND u.role = 'company_admin'
						ORDER BY u.created_at ASC, u.id ASC
						LIMIT 1
					) WHERE created_by IS NULL`,
				DeleteOrphans: "DELETE FROM jobs WHERE created_by IS NULL",
			}.Step(),
		},
	})

	// メールアドレスの照合は小文字で統一する。過去に大文字混じりで登録された行を正規化する。
	// 元の表記は保持していないため巻き戻しはできない。
	Register(Migration{
		ID:   "20240702-101500",
		Name: "normalize subcontractor emails",
		Steps: []Step{
			RawStep(
				"lowercase subcontractor emails",
				"UPDATE subcontractors SET email = lower(email) WHERE email IS NOT NULL AND email <> lower(email)",
				func(tx *gorm.DB) (bool, error) {
					var count int64
					err := tx.Raw("SELECT count(*) FROM subcontractors WHERE email IS NOT NULL AND email <> lower(email)").Scan(&count).Error
					if err != nil {
						return false, err
					}
					return count == 0, nil
				},
				nil,
			),
		},
	})
}
