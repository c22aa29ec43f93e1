package physsync

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/milk9111/physdemo/descriptor"
	"github.com/milk9111/physdemo/physics"
)

// participant is one resolved end of a constraint with its local frame.
type participant struct {
	name     string
	entry    *Entry
	pivot    math32.Vector3
	rotation math32.Quat
}

// BuildConstraints adds the supported constraints in specs to world and
// returns how many were added. Every skipped spec is recorded in diag; a
// failing spec never stops the ones after it.
func BuildConstraints(world physics.World, reg *Registry, specs []descriptor.ConstraintSpec, named NamedBodyMap, diag *Diagnostics) int {
	return len(buildConstraints(world, reg, specs, named, diag))
}

func buildConstraints(world physics.World, reg *Registry, specs []descriptor.ConstraintSpec, named NamedBodyMap, diag *Diagnostics) []physics.Constraint {
	var out []physics.Constraint
	for _, spec := range specs {
		if c, ok := buildConstraint(world, reg, spec, named, diag); ok {
			out = append(out, c)
		}
	}
	return out
}

func buildConstraint(world physics.World, reg *Registry, spec descriptor.ConstraintSpec, named NamedBodyMap, diag *Diagnostics) (physics.Constraint, bool) {
	subject := constraintSubject(spec)

	a := resolve(reg, named, spec.Object1, spec.TranslationA, spec.RotationA)
	b := resolve(reg, named, spec.Object2, spec.TranslationB, spec.RotationB)

	// A missing named participant drops the spec rather than anchoring the
	// other body to the world.
	for _, p := range []participant{a, b} {
		if p.name != "" && p.entry == nil {
			diag.Record(DiagUnresolvedParticipant, subject, "no body named %q", p.name)
			return nil, false
		}
	}
	if a.entry == nil {
		a, b = b, a
	}
	if a.entry == nil {
		diag.Record(DiagUnresolvedParticipant, subject, "constraint has no participants")
		return nil, false
	}

	def := physics.ConstraintDef{
		BodyA:  a.entry.Body,
		PivotA: a.pivot,
		AxisA:  physics.HingeAxis(a.rotation),
	}
	if b.entry != nil {
		def.BodyB = b.entry.Body
		def.PivotB = b.pivot
		def.AxisB = physics.HingeAxis(b.rotation)
	}

	switch spec.Type.Kind {
	case descriptor.ConstraintPoint:
		def.Kind = physics.ConstraintPoint
	case descriptor.ConstraintHinge:
		def.Kind = physics.ConstraintHinge
	default:
		diag.Record(DiagUnsupportedConstraint, subject, "constraint type %s is not supported", spec.Type)
		return nil, false
	}

	c, err := world.AddConstraint(def, spec.DisableCollisions)
	if err != nil {
		diag.Record(DiagConstraintRejected, subject, "%v", err)
		return nil, false
	}
	return c, true
}

func resolve(reg *Registry, named NamedBodyMap, name string, pivot math32.Vector3, rot math32.Quat) participant {
	p := participant{name: name, pivot: pivot, rotation: rot}
	if name == "" {
		return p
	}
	if h, ok := named[name]; ok {
		if e, ok := reg.Get(h); ok {
			p.entry = e
		}
	}
	return p
}

func constraintSubject(spec descriptor.ConstraintSpec) string {
	switch {
	case spec.Object1 != "" && spec.Object2 != "":
		return fmt.Sprintf("constraint[%d] %s(%s, %s)", spec.Index, spec.Type, spec.Object1, spec.Object2)
	case spec.Object1 != "" || spec.Object2 != "":
		return fmt.Sprintf("constraint[%d] %s(%s)", spec.Index, spec.Type, spec.Object1+spec.Object2)
	default:
		return fmt.Sprintf("constraint[%d] %s", spec.Index, spec.Type)
	}
}
