package taskboard

// PersonPatch is a partial update for a Person.
type PersonPatch struct {
    Name  Field[string]
    Email Field[string]
    Role  Field[string]
}

// Apply returns cur with the patch applied. Name and email cannot be blanked.
func (p PersonPatch) Apply(cur Person) Person {
    cur.Name = keepUnlessBlank(cur.Name, p.Name)
    cur.Email = keepUnlessBlank(cur.Email, p.Email)
    cur.Role = setIfPresent(cur.Role, p.Role)
    return cur
}

// ProjectPatch is a partial update for a Project. CreatedAt is not patchable.
type ProjectPatch struct {
    Name        Field[string]
    Description Field[string]
    PersonID    Field[int]
}

// Apply returns cur with the patch applied.
func (p ProjectPatch) Apply(cur Project) Project {
    cur.Name = keepUnlessBlank(cur.Name, p.Name)
    cur.Description = setIfPresent(cur.Description, p.Description)
    cur.PersonID = applyRef(cur.PersonID, p.PersonID)
    return cur
}

// PersonRef returns the person id that must exist before the patch is applied.
func (p ProjectPatch) PersonRef() (int, bool) { return refToCheck(p.PersonID) }

// TaskPatch is a partial update for a Task.
type TaskPatch struct {
    Title       Field[string]
    Description Field[string]
    Status      Field[string]
    ProjectID   Field[int]
}

// Apply returns cur with the patch applied. Title and status cannot be blanked.
func (p TaskPatch) Apply(cur Task) Task {
    cur.Title = keepUnlessBlank(cur.Title, p.Title)
    cur.Description = setIfPresent(cur.Description, p.Description)
    cur.Status = keepUnlessBlank(cur.Status, p.Status)
    cur.ProjectID = applyRef(cur.ProjectID, p.ProjectID)
    return cur
}

// ProjectRef returns the project id that must exist before the patch is applied.
func (p TaskPatch) ProjectRef() (int, bool) { return refToCheck(p.ProjectID) }

func keepUnlessBlank(cur string, f Field[string]) string {
    if f.HasValue() && f.Value != "" { return f.Value }
    return cur
}

// setIfPresent lets an explicit null or "" clear an optional field.
func setIfPresent(cur string, f Field[string]) string {
    if !f.Set { return cur }
    return f.Value
}

// applyRef: absent or 0 keeps, null clears, anything else replaces.
func applyRef(cur *int, f Field[int]) *int {
    if !f.Set { return cur }
    if f.Null { return nil }
    if f.Value == 0 { return cur }
    return IntPtr(f.Value)
}

func refToCheck(f Field[int]) (int, bool) {
    if !f.HasValue() || f.Value == 0 { return 0, false }
    return f.Value, true
}

// NormalizeRef maps a zero reference to nil; a zero id is never a valid parent.
func NormalizeRef(ref *int) *int {
    if ref == nil || *ref == 0 { return nil }
    return IntPtr(*ref)
}
