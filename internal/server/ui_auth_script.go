package server

const uiAuthJS = `
(function () {
  const emailPattern = /^[^\s@]+@[^\s@]+\.[^\s@]+$/;
  const revertAfterMs = 5000;

  function strengthLevel(pw) {
    let score = 0;
    if (pw.length >= 8) score++;
    if (/[a-z]/.test(pw) && /[A-Z]/.test(pw)) score++;
    if (/\d/.test(pw)) score++;
    if (/[^a-zA-Z\d]/.test(pw)) score++;
    if (score >= 4) return 'strong';
    if (score >= 2) return 'medium';
    return 'weak';
  }

  function clearAnnotation(input) {
    const group = input.closest('.form-group');
    if (!group) return;
    group.classList.remove('error');
    group.querySelectorAll('.error-message').forEach((n) => n.remove());
  }

  function annotate(input, message) {
    const group = input.closest('.form-group');
    if (!group) return;
    group.classList.add('error');
    const node = document.createElement('div');
    node.className = 'error-message';
    node.textContent = message;
    group.appendChild(node);
  }

  function validate(form) {
    let valid = true;
    form.querySelectorAll('input[required]').forEach((input) => {
      clearAnnotation(input);
      const value = input.value.trim();
      if (!value) {
        valid = false;
        annotate(input, 'This field is required');
      } else if (input.type === 'email' && !emailPattern.test(input.value)) {
        valid = false;
        annotate(input, 'Please enter a valid email address');
      }
    });
    return valid;
  }

  document.addEventListener('DOMContentLoaded', () => {
    const form = document.querySelector('.auth-form');
    const password = document.getElementById('password');
    const confirm = document.getElementById('confirm_password');
    const meter = document.querySelector('.strength-bar');
    if (!form) return;

    if (password && meter) {
      password.addEventListener('input', () => {
        meter.className = 'strength-bar strength-' + strengthLevel(password.value);
      });
    }
    if (password && confirm) {
      confirm.addEventListener('input', () => {
        if (!password.value) return;
        clearAnnotation(confirm);
        if (confirm.value && confirm.value !== password.value) {
          annotate(confirm, 'Passwords do not match');
        }
      });
    }

    form.addEventListener('submit', (e) => {
      if (!validate(form)) {
        e.preventDefault();
        return;
      }
      if (confirm && confirm.value && password && confirm.value !== password.value) {
        e.preventDefault();
        window.raincastFlash.notify('error', 'Passwords do not match');
        return;
      }
      const btn = form.querySelector('.auth-btn');
      if (!btn) return;
      if (!btn.dataset.originalLabel) btn.dataset.originalLabel = btn.textContent;
      if (btn.__raincastRevert) clearTimeout(btn.__raincastRevert);
      btn.textContent = 'Processing...';
      btn.classList.add('loading');
      btn.__raincastRevert = setTimeout(() => {
        btn.textContent = btn.dataset.originalLabel;
        btn.classList.remove('loading');
        btn.__raincastRevert = null;
      }, revertAfterMs);
    });
  });
})();
`
