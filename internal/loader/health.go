package loader

// CompanyHealth summarizes what the loader can see for one company.
type CompanyHealth struct {
	Company     string   `json:"company"`
	Name        string   `json:"name"`
	Files       int      `json:"files"`
	Records     int      `json:"records"`
	SkippedRows int      `json:"skipped_rows"`
	Warnings    []string `json:"warnings,omitempty"`
}

// HealthStatus reports whether the data directory is usable and how much
// data each registered company has. A missing directory or skipped rows
// degrade the status without taking anything down.
type HealthStatus struct {
	Healthy        bool            `json:"healthy"`
	DataDir        string          `json:"data_dir"`
	DataDirMissing bool            `json:"data_dir_missing"`
	Companies      []CompanyHealth `json:"companies"`
}

// Health loads every registered company and summarizes the outcome.
func (l *Loader) Health() HealthStatus {
	status := HealthStatus{
		Healthy: true,
		DataDir: l.dir,
	}

	for _, company := range l.registry().List() {
		result, err := l.LoadCompany(company.Code)
		if err != nil {
			status.Healthy = false
			status.Companies = append(status.Companies, CompanyHealth{
				Company:  company.Code,
				Name:     company.Name,
				Warnings: []string{err.Error()},
			})
			continue
		}

		if result.DirMissing {
			status.DataDirMissing = true
			status.Healthy = false
		}
		if result.SkippedRows > 0 {
			status.Healthy = false
		}

		status.Companies = append(status.Companies, CompanyHealth{
			Company:     company.Code,
			Name:        company.Name,
			Files:       len(result.Files),
			Records:     len(result.Records),
			SkippedRows: result.SkippedRows,
			Warnings:    result.Warnings,
		})
	}

	return status
}
