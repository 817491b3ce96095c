package mengine

// Resource is what a sprite shows: either a static image or an animation.
// The zero value is an empty static resource of size 0x0.
type Resource struct {
	image Image
	anim  *Animation
}

// StaticResource wraps a whole image.
func StaticResource(img Image) Resource {
	return Resource{image: img}
}

// AnimationResource wraps an animation.
func AnimationResource(anim *Animation) Resource {
	return Resource{anim: anim}
}

// IsAnimation reports whether the resource is animated.
func (r Resource) IsAnimation() bool {
	return r.anim != nil
}

// Animation returns the animation, or nil for static resources.
func (r Resource) Animation() *Animation {
	return r.anim
}

// Image returns the underlying image of either variant.
func (r Resource) Image() Image {
	if r.anim != nil {
		return r.anim.image
	}
	return r.image
}

// Width is the frame width for animations, the image width otherwise.
func (r Resource) Width() float64 {
	if r.anim != nil {
		return r.anim.FrameWidth()
	}
	w, _ := imageSize(r.image)
	return w
}

// Height is the frame height for animations, the image height otherwise.
func (r Resource) Height() float64 {
	if r.anim != nil {
		return r.anim.FrameHeight()
	}
	_, h := imageSize(r.image)
	return h
}

// Draw renders the resource into dst.
func (r Resource) Draw(c Canvas, dst Rect) {
	if r.anim != nil {
		r.anim.Draw(c, dst)
		return
	}
	if r.image == nil {
		return
	}
	c.DrawRect(r.image, imageRect(r.image), dst)
}
