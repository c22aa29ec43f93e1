package descriptor

import "fmt"

// Issue is a non-fatal problem found in a descriptor. The document still
// loads; the affected entry is skipped when the scene is built.
type Issue struct {
	Subject string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Subject, i.Message)
}

// Issues lists the entries that will be skipped at build time.
func (d *Document) Issues() []Issue {
	if d == nil {
		return nil
	}
	var out []Issue
	seen := make(map[string]bool, len(d.RigidBodies))
	for _, rb := range d.RigidBodies {
		subject := "rigid_body " + rb.Name
		if rb.Name == "" {
			out = append(out, Issue{Subject: subject, Message: "missing name"})
		}
		if seen[rb.Name] {
			out = append(out, Issue{Subject: subject, Message: "duplicate name; later entry ignored"})
		}
		seen[rb.Name] = true
		switch rb.Shape.Kind {
		case ShapeBox, ShapeSphere:
		case ShapeNone:
			out = append(out, Issue{Subject: subject, Message: "no collision shape"})
		default:
			out = append(out, Issue{Subject: subject, Message: fmt.Sprintf("unsupported collision shape %s", rb.Shape)})
		}
	}
	for _, c := range d.Constraints {
		subject := fmt.Sprintf("constraint %d", c.Index)
		switch c.Type.Kind {
		case ConstraintPoint, ConstraintHinge:
		default:
			out = append(out, Issue{Subject: subject, Message: fmt.Sprintf("unsupported constraint type %s", c.Type)})
		}
		if c.Object1 == "" && c.Object2 == "" {
			out = append(out, Issue{Subject: subject, Message: "no participants"})
		}
	}
	return out
}
