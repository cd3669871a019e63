package monitor

// Column binds a CSV header name to the Sample field it fills
type Column struct {
	Name string
	set  func(*Sample, float64)
}

// NewColumn creates a column that stores parsed values with set
func NewColumn(name string, set func(*Sample, float64)) Column {
	return Column{
		Name: name,
		set:  set,
	}
}

// Set stores v into the column's field of s
func (c Column) Set(s *Sample, v float64) {
	c.set(s, v)
}

// Schema is the ordered set of recognized columns
type Schema struct {
	Columns []Column
	byName  map[string]int
}

func NewSchema() *Schema {
	return &Schema{
		Columns: []Column{},
		byName:  map[string]int{},
	}
}

func (s *Schema) AddColumn(c Column) *Schema {
	if s.byName == nil {
		s.byName = map[string]int{}
	}
	s.byName[c.Name] = len(s.Columns)
	s.Columns = append(s.Columns, c)
	return s
}

// Lookup returns the column registered under name, if any
func (s *Schema) Lookup(name string) (Column, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Column{}, false
	}
	return s.Columns[i], true
}

// Names lists the column names in schema order
func (s *Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// DefaultSchema holds the numeric columns written by the resource monitor
var DefaultSchema = NewSchema().
	AddColumn(NewColumn("timestamp_ms", func(s *Sample, v float64) { s.TimestampMS = v })).
	AddColumn(NewColumn("cpu_user", func(s *Sample, v float64) { s.CPUUser = v })).
	AddColumn(NewColumn("cpu_sys", func(s *Sample, v float64) { s.CPUSys = v })).
	AddColumn(NewColumn("cpu_idle", func(s *Sample, v float64) { s.CPUIdle = v })).
	AddColumn(NewColumn("memory_mb", func(s *Sample, v float64) { s.MemoryMB = v })).
	AddColumn(NewColumn("memory_free_mb", func(s *Sample, v float64) { s.MemoryFreeMB = v })).
	AddColumn(NewColumn("process_cpu", func(s *Sample, v float64) { s.ProcessCPU = v })).
	AddColumn(NewColumn("process_memory", func(s *Sample, v float64) { s.ProcessMemory = v })).
	AddColumn(NewColumn("load_avg_1m", func(s *Sample, v float64) { s.LoadAvg1m = v })).
	AddColumn(NewColumn("disk_io_read", func(s *Sample, v float64) { s.DiskIORead = v })).
	AddColumn(NewColumn("disk_io_write", func(s *Sample, v float64) { s.DiskIOWrite = v }))
